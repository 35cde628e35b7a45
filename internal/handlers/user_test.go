package handlers

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

func TestUpsertCartItemReplacesQuantity(t *testing.T) {
	productID := primitive.NewObjectID()
	cart := []models.CartItem{{Product: productID, Quantity: 2}}

	got := upsertCartItem(cart, productID, 5)

	if len(got) != 1 {
		t.Fatalf("expected 1 entry after re-adding the same product, got %d", len(got))
	}
	if got[0].Quantity != 5 {
		t.Fatalf("expected quantity replaced with 5, got %d", got[0].Quantity)
	}
	if cart[0].Quantity != 2 {
		t.Fatalf("expected input cart untouched, got quantity %d", cart[0].Quantity)
	}
}

func TestUpsertCartItemAppendsNewProduct(t *testing.T) {
	existing := primitive.NewObjectID()
	added := primitive.NewObjectID()
	cart := []models.CartItem{{Product: existing, Quantity: 1}}

	got := upsertCartItem(cart, added, 3)

	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[1].Product != added || got[1].Quantity != 3 {
		t.Fatalf("unexpected appended entry: %+v", got[1])
	}
}

func TestRemoveCartItemAbsentProductIsNoOp(t *testing.T) {
	cart := []models.CartItem{{Product: primitive.NewObjectID(), Quantity: 1}}

	got := removeCartItem(cart, primitive.NewObjectID())

	if !reflect.DeepEqual(got, cart) {
		t.Fatalf("expected cart unchanged, got %+v", got)
	}
}

func TestRemoveCartItemDropsEntry(t *testing.T) {
	target := primitive.NewObjectID()
	other := primitive.NewObjectID()
	cart := []models.CartItem{
		{Product: target, Quantity: 2},
		{Product: other, Quantity: 1},
	}

	got := removeCartItem(cart, target)

	if len(got) != 1 || got[0].Product != other {
		t.Fatalf("expected only the other product to remain, got %+v", got)
	}
}

func TestToggleWishlistEntryAddsWhenAbsent(t *testing.T) {
	productID := primitive.NewObjectID()

	got := toggleWishlistEntry(nil, productID)

	if len(got) != 1 || got[0] != productID {
		t.Fatalf("expected wishlist containing the product, got %v", got)
	}
}

func TestToggleWishlistEntryTwiceRestoresOriginal(t *testing.T) {
	wishlist := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}
	productID := primitive.NewObjectID()

	once := toggleWishlistEntry(wishlist, productID)
	if len(once) != 3 {
		t.Fatalf("expected 3 entries after first toggle, got %d", len(once))
	}

	twice := toggleWishlistEntry(once, productID)
	if !reflect.DeepEqual(twice, wishlist) {
		t.Fatalf("expected second toggle to restore %v, got %v", wishlist, twice)
	}
}
