package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	applog "mirepoix/internal/log"
	"mirepoix/internal/recipes"
	"mirepoix/internal/shopping"
	"mirepoix/models"
)

type generateListRequest struct {
	Name      string `json:"name"`
	RecipeIDs []uint `json:"recipe_ids"`
}

type shoppingItemResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	Category  string  `json:"category"`
	Checked   bool    `json:"checked"`
	RecipeIDs []uint  `json:"recipe_ids"`
}

type shoppingListResponse struct {
	Token     string                 `json:"token"`
	Name      string                 `json:"name"`
	Items     []shoppingItemResponse `json:"items"`
	CreatedAt time.Time              `json:"created_at"`
}

func projectShoppingItem(item models.ShoppingItem) shoppingItemResponse {
	return shoppingItemResponse{
		ID:        item.ID,
		Name:      item.Name,
		Quantity:  item.Quantity,
		Unit:      item.Unit,
		Category:  item.Category,
		Checked:   item.Checked,
		RecipeIDs: item.RecipeIDs,
	}
}

func projectShoppingList(list *models.ShoppingList) shoppingListResponse {
	items := make([]shoppingItemResponse, 0, len(list.Items))
	for _, item := range list.Items {
		items = append(items, projectShoppingItem(item))
	}
	return shoppingListResponse{
		Token:     list.Token,
		Name:      list.Name,
		Items:     items,
		CreatedAt: list.CreatedAt,
	}
}

// ShoppingListResource routes /app/api/shopping-lists requests: generation
// from recipes, retrieval by token, the by-category view, and item toggles.
func ShoppingListResource(w http.ResponseWriter, r *http.Request) {
	if shoppingService == nil {
		applog.Debug(r.Context(), "shopping request without configured service")
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	userID, ok := currentUserID(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/app/api/shopping-lists")
	path = strings.Trim(path, "/")

	if path == "" {
		requirePost(w, r, func() { generateShoppingList(w, r, userID) })
		return
	}

	token, rest, _ := strings.Cut(path, "/")
	switch {
	case rest == "":
		requireGet(w, r, func() { showShoppingList(w, r, userID, token) })
	case rest == "items-by-category":
		requireGet(w, r, func() { showShoppingListByCategory(w, r, userID, token) })
	case strings.HasPrefix(rest, "items/"):
		if r.Method != http.MethodPatch && r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		toggleShoppingItem(w, r, userID, token, strings.TrimPrefix(rest, "items/"))
	default:
		http.NotFound(w, r)
	}
}

func generateShoppingList(w http.ResponseWriter, r *http.Request, userID uint) {
	var payload generateListRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(r.Context(), "invalid shopping list payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	list, err := shoppingService.GenerateFromRecipes(r.Context(), userID, strings.TrimSpace(payload.Name), payload.RecipeIDs)
	if err != nil {
		writeShoppingError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, projectShoppingList(list))
}

func showShoppingList(w http.ResponseWriter, r *http.Request, userID uint, token string) {
	list, err := shoppingService.GetList(r.Context(), userID, token)
	if err != nil {
		writeShoppingError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projectShoppingList(list))
}

func showShoppingListByCategory(w http.ResponseWriter, r *http.Request, userID uint, token string) {
	partitions, err := shoppingService.GetItemsByCategory(r.Context(), userID, token)
	if err != nil {
		writeShoppingError(w, r, err)
		return
	}

	response := make(map[string][]shoppingItemResponse, len(partitions))
	for category, items := range partitions {
		projected := make([]shoppingItemResponse, 0, len(items))
		for _, item := range items {
			projected = append(projected, projectShoppingItem(item))
		}
		response[category] = projected
	}
	writeJSON(w, http.StatusOK, response)
}

func toggleShoppingItem(w http.ResponseWriter, r *http.Request, userID uint, token, itemPart string) {
	idValue, err := strconv.ParseUint(itemPart, 10, 64)
	if err != nil {
		applog.Debug(r.Context(), "invalid shopping item identifier", "identifier", itemPart, "error", err)
		http.NotFound(w, r)
		return
	}

	var payload struct {
		Checked bool `json:"checked"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(r.Context(), "invalid toggle payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	item, err := shoppingService.ToggleItem(r.Context(), userID, token, uint(idValue), payload.Checked)
	if err != nil {
		writeShoppingError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projectShoppingItem(*item))
}

func writeShoppingError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, shopping.ErrNoRecipes):
		writeJSONError(w, http.StatusBadRequest, "none of the requested recipes are available")
	case errors.Is(err, shopping.ErrListNotFound), errors.Is(err, shopping.ErrItemNotFound):
		http.NotFound(w, r)
	default:
		var integrity *recipes.IntegrityError
		if errors.As(err, &integrity) {
			applog.Error(r.Context(), "recipe store integrity failure", "error", err)
			writeJSONError(w, http.StatusConflict, integrity.Error())
			return
		}
		applog.Error(r.Context(), "shopping request failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}
