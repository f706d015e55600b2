package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
)

func doShoppingRequest(t *testing.T, sm *scs.SessionManager, userID uint, method, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if payload != nil {
		req = jsonRequest(t, method, target, payload)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req = authenticateRequest(t, sm, req, userID)
	w := httptest.NewRecorder()
	ShoppingListResource(w, req)
	return w
}

func TestShoppingListResourceGenerate(t *testing.T) {
	sm, _ := withConfiguredHandlers(t)

	first := createRecipeViaAPI(t, sm, 1, "Pancakes")
	second := createRecipeViaAPI(t, sm, 1, "Muffins")

	w := doShoppingRequest(t, sm, 1, http.MethodPost, "/app/api/shopping-lists", generateListRequest{
		Name:      "Weekend Baking",
		RecipeIDs: []uint{first.ID, second.ID},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("generate status = %d: %s", w.Code, w.Body.String())
	}

	var list shoppingListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if list.Token == "" {
		t.Fatal("expected a share token")
	}
	// Both recipes share the same two ingredient lines, so they merge.
	if len(list.Items) != 2 {
		t.Fatalf("items = %d, want 2: %+v", len(list.Items), list.Items)
	}
	if list.Items[0].Quantity != 4 {
		t.Fatalf("flour quantity = %v, want summed 4", list.Items[0].Quantity)
	}
	if len(list.Items[0].RecipeIDs) != 2 {
		t.Fatalf("flour recipe ids = %v, want both", list.Items[0].RecipeIDs)
	}

	w = doShoppingRequest(t, sm, 1, http.MethodGet, "/app/api/shopping-lists/"+list.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("show status = %d: %s", w.Code, w.Body.String())
	}
}

func TestShoppingListResourceGenerateRejectsEmptyInput(t *testing.T) {
	sm, _ := withConfiguredHandlers(t)

	w := doShoppingRequest(t, sm, 1, http.MethodPost, "/app/api/shopping-lists", generateListRequest{
		Name:      "Nothing",
		RecipeIDs: []uint{404, 405},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", w.Code, w.Body.String())
	}
}

func TestShoppingListResourceItemsByCategory(t *testing.T) {
	sm, _ := withConfiguredHandlers(t)

	recipe := createRecipeViaAPI(t, sm, 1, "Dinner")
	w := doShoppingRequest(t, sm, 1, http.MethodPost, "/app/api/shopping-lists", generateListRequest{
		Name:      "Dinner",
		RecipeIDs: []uint{recipe.ID},
	})
	var list shoppingListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}

	w = doShoppingRequest(t, sm, 1, http.MethodGet, "/app/api/shopping-lists/"+list.Token+"/items-by-category", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var partitions map[string][]shoppingItemResponse
	if err := json.Unmarshal(w.Body.Bytes(), &partitions); err != nil {
		t.Fatalf("failed to decode partitions: %v", err)
	}
	total := 0
	for category, items := range partitions {
		if len(items) == 0 {
			t.Fatalf("empty partition %q present", category)
		}
		total += len(items)
	}
	if total != len(list.Items) {
		t.Fatalf("partitioned %d items, list has %d", total, len(list.Items))
	}
	if len(partitions["pantry"]) != 1 || len(partitions["dairy"]) != 1 {
		t.Fatalf("unexpected partitions: %+v", partitions)
	}
}

func TestShoppingListResourceToggle(t *testing.T) {
	sm, _ := withConfiguredHandlers(t)

	recipe := createRecipeViaAPI(t, sm, 1, "Snacks")
	w := doShoppingRequest(t, sm, 1, http.MethodPost, "/app/api/shopping-lists", generateListRequest{
		Name:      "Snacks",
		RecipeIDs: []uint{recipe.ID},
	})
	var list shoppingListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}

	target := fmt.Sprintf("/app/api/shopping-lists/%s/items/%d", list.Token, list.Items[0].ID)
	w = doShoppingRequest(t, sm, 1, http.MethodPatch, target, map[string]bool{"checked": true})
	if w.Code != http.StatusOK {
		t.Fatalf("toggle status = %d: %s", w.Code, w.Body.String())
	}

	var item shoppingItemResponse
	if err := json.Unmarshal(w.Body.Bytes(), &item); err != nil {
		t.Fatalf("failed to decode item: %v", err)
	}
	if !item.Checked {
		t.Fatal("expected checked item")
	}

	w = doShoppingRequest(t, sm, 1, http.MethodPatch, fmt.Sprintf("/app/api/shopping-lists/%s/items/%d", list.Token, 12345), map[string]bool{"checked": true})
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing item status = %d, want 404", w.Code)
	}
}

func TestShoppingListResourceScopedToOwner(t *testing.T) {
	sm, _ := withConfiguredHandlers(t)

	recipe := createRecipeViaAPI(t, sm, 1, "Private")
	w := doShoppingRequest(t, sm, 1, http.MethodPost, "/app/api/shopping-lists", generateListRequest{
		Name:      "Private",
		RecipeIDs: []uint{recipe.ID},
	})
	var list shoppingListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}

	w = doShoppingRequest(t, sm, 2, http.MethodGet, "/app/api/shopping-lists/"+list.Token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("foreign owner status = %d, want 404", w.Code)
	}

	// Another user cannot pull ingredients out of the recipe by naming its
	// id in a generate request.
	w = doShoppingRequest(t, sm, 2, http.MethodPost, "/app/api/shopping-lists", generateListRequest{
		Name:      "Poached",
		RecipeIDs: []uint{recipe.ID},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("foreign generate status = %d, want 400: %s", w.Code, w.Body.String())
	}
}
