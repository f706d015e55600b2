package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	applog "mirepoix/internal/log"
	"mirepoix/internal/recipes"
	"mirepoix/internal/units"
	"mirepoix/models"
)

type recipeResponse struct {
	ID             uint                 `json:"id"`
	CurrentVersion int                  `json:"current_version"`
	Title          string               `json:"title"`
	Description    string               `json:"description,omitempty"`
	Ingredients    []models.Ingredient  `json:"ingredients"`
	Instructions   []models.Instruction `json:"instructions"`
	PrepMinutes    int                  `json:"prep_minutes"`
	CookMinutes    int                  `json:"cook_minutes"`
	Servings       int                  `json:"servings"`
	SourceURL      string               `json:"source_url,omitempty"`
	Tags           []string             `json:"tags,omitempty"`
	Rating         *int                 `json:"rating,omitempty"`
	FolderID       *uint                `json:"folder_id,omitempty"`
	ParentRecipeID *uint                `json:"parent_recipe_id,omitempty"`
	ArchivedAt     *time.Time           `json:"archived_at,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

type recipeVersionResponse struct {
	Version      int                  `json:"version"`
	Title        string               `json:"title"`
	Description  string               `json:"description,omitempty"`
	Ingredients  []models.Ingredient  `json:"ingredients"`
	Instructions []models.Instruction `json:"instructions"`
	PrepMinutes  int                  `json:"prep_minutes"`
	CookMinutes  int                  `json:"cook_minutes"`
	Servings     int                  `json:"servings"`
	SourceURL    string               `json:"source_url,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

type heritageResponse struct {
	Recipe    recipeResponse   `json:"recipe"`
	Parent    *recipeResponse  `json:"parent,omitempty"`
	Ancestors []recipeResponse `json:"ancestors"`
	Children  []recipeResponse `json:"children"`
}

type scaleRequest struct {
	Factor float64 `json:"factor"`
	System string  `json:"system,omitempty"`
}

func projectRecipe(recipe *models.Recipe) recipeResponse {
	return recipeResponse{
		ID:             recipe.ID,
		CurrentVersion: recipe.CurrentVersion,
		Title:          recipe.Title,
		Description:    recipe.Description,
		Ingredients:    recipe.Ingredients,
		Instructions:   recipe.Instructions,
		PrepMinutes:    recipe.PrepMinutes,
		CookMinutes:    recipe.CookMinutes,
		Servings:       recipe.Servings,
		SourceURL:      recipe.SourceURL,
		Tags:           recipe.Tags,
		Rating:         recipe.Rating,
		FolderID:       recipe.FolderID,
		ParentRecipeID: recipe.ParentRecipeID,
		ArchivedAt:     recipe.ArchivedAt,
		CreatedAt:      recipe.CreatedAt,
		UpdatedAt:      recipe.UpdatedAt,
	}
}

func projectRecipes(heads []models.Recipe) []recipeResponse {
	responses := make([]recipeResponse, 0, len(heads))
	for i := range heads {
		responses = append(responses, projectRecipe(&heads[i]))
	}
	return responses
}

func projectVersion(version models.RecipeVersion) recipeVersionResponse {
	return recipeVersionResponse{
		Version:      version.Version,
		Title:        version.Title,
		Description:  version.Description,
		Ingredients:  version.Ingredients,
		Instructions: version.Instructions,
		PrepMinutes:  version.PrepMinutes,
		CookMinutes:  version.CookMinutes,
		Servings:     version.Servings,
		SourceURL:    version.SourceURL,
		CreatedAt:    version.CreatedAt,
	}
}

// RecipeResource routes /app/api/recipes requests: the collection, a single
// recipe, and the per-recipe actions (history, heritage, duplicate, restore,
// archive, unarchive, scaled).
func RecipeResource(w http.ResponseWriter, r *http.Request) {
	if recipeService == nil {
		applog.Debug(r.Context(), "recipe request without configured service")
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	userID, ok := currentUserID(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/app/api/recipes")
	path = strings.Trim(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			listRecipes(w, r, userID)
		case http.MethodPost:
			createRecipe(w, r, userID)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	idPart, action, _ := strings.Cut(path, "/")
	idValue, err := strconv.ParseUint(idPart, 10, 64)
	if err != nil {
		applog.Debug(r.Context(), "invalid recipe identifier", "identifier", idPart, "error", err)
		http.NotFound(w, r)
		return
	}
	recipeID := uint(idValue)

	head, err := recipeService.GetRecipe(r.Context(), recipeID, nil)
	if err != nil {
		writeRecipeError(w, r, err)
		return
	}
	// Foreign recipes read as 404 rather than 403 so the API does not leak
	// which ids exist.
	if head.OwnerID != userID {
		http.NotFound(w, r)
		return
	}

	switch action {
	case "":
		switch r.Method {
		case http.MethodGet:
			showRecipe(w, r, head)
		case http.MethodPut:
			updateRecipe(w, r, recipeID)
		case http.MethodDelete:
			archiveRecipe(w, r, recipeID)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	case "history":
		requireGet(w, r, func() { recipeHistory(w, r, recipeID) })
	case "heritage":
		requireGet(w, r, func() { recipeHeritage(w, r, recipeID) })
	case "duplicate":
		requirePost(w, r, func() { duplicateRecipe(w, r, recipeID) })
	case "restore":
		requirePost(w, r, func() { restoreRecipeVersion(w, r, recipeID) })
	case "unarchive":
		requirePost(w, r, func() { unarchiveRecipe(w, r, recipeID) })
	case "scaled":
		requirePost(w, r, func() { scaledRecipe(w, r, head) })
	default:
		http.NotFound(w, r)
	}
}

func requireGet(w http.ResponseWriter, r *http.Request, handle func()) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	handle()
}

func requirePost(w http.ResponseWriter, r *http.Request, handle func()) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	handle()
}

func listRecipes(w http.ResponseWriter, r *http.Request, userID uint) {
	heads, err := recipeService.ListRecipes(r.Context(), userID)
	if err != nil {
		writeRecipeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projectRecipes(heads))
}

func createRecipe(w http.ResponseWriter, r *http.Request, userID uint) {
	var input recipes.RecipeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		applog.Debug(r.Context(), "invalid recipe create payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	created, err := recipeService.CreateRecipe(r.Context(), userID, input)
	if err != nil {
		writeRecipeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, projectRecipe(created))
}

func showRecipe(w http.ResponseWriter, r *http.Request, head *models.Recipe) {
	raw := strings.TrimSpace(r.URL.Query().Get("version"))
	if raw == "" {
		writeJSON(w, http.StatusOK, projectRecipe(head))
		return
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "version must be an integer")
		return
	}

	recipe, err := recipeService.GetRecipe(r.Context(), head.ID, &value)
	if err != nil {
		writeRecipeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projectRecipe(recipe))
}

func updateRecipe(w http.ResponseWriter, r *http.Request, recipeID uint) {
	var input recipes.RecipeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		applog.Debug(r.Context(), "invalid recipe update payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	updated, err := recipeService.UpdateRecipe(r.Context(), recipeID, input)
	if err != nil {
		writeRecipeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projectRecipe(updated))
}

func archiveRecipe(w http.ResponseWriter, r *http.Request, recipeID uint) {
	archived, err := recipeService.ArchiveRecipe(r.Context(), recipeID)
	if err != nil {
		writeRecipeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projectRecipe(archived))
}

func unarchiveRecipe(w http.ResponseWriter, r *http.Request, recipeID uint) {
	restored, err := recipeService.UnarchiveRecipe(r.Context(), recipeID)
	if err != nil {
		writeRecipeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projectRecipe(restored))
}

func recipeHistory(w http.ResponseWriter, r *http.Request, recipeID uint) {
	versions, err := recipeService.GetVersionHistory(r.Context(), recipeID)
	if err != nil {
		writeRecipeError(w, r, err)
		return
	}

	responses := make([]recipeVersionResponse, 0, len(versions))
	for _, version := range versions {
		responses = append(responses, projectVersion(version))
	}
	writeJSON(w, http.StatusOK, responses)
}

func recipeHeritage(w http.ResponseWriter, r *http.Request, recipeID uint) {
	heritage, err := recipeService.GetRecipeHeritage(r.Context(), recipeID)
	if err != nil {
		writeRecipeError(w, r, err)
		return
	}

	response := heritageResponse{
		Recipe:    projectRecipe(heritage.Recipe),
		Ancestors: projectRecipes(heritage.Ancestors),
		Children:  projectRecipes(heritage.Children),
	}
	if heritage.Parent != nil {
		parent := projectRecipe(heritage.Parent)
		response.Parent = &parent
	}
	writeJSON(w, http.StatusOK, response)
}

func duplicateRecipe(w http.ResponseWriter, r *http.Request, recipeID uint) {
	duplicate, err := recipeService.DuplicateRecipe(r.Context(), recipeID)
	if err != nil {
		writeRecipeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, projectRecipe(duplicate))
}

func restoreRecipeVersion(w http.ResponseWriter, r *http.Request, recipeID uint) {
	var payload struct {
		Version int `json:"version"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(r.Context(), "invalid restore payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	restored, err := recipeService.RestoreVersion(r.Context(), recipeID, payload.Version)
	if err != nil {
		writeRecipeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projectRecipe(restored))
}

// scaledRecipe computes a scaled, optionally unit-converted view of the
// recipe's current version. Nothing is persisted; quantities are rounded to
// kitchen-practical values after conversion.
func scaledRecipe(w http.ResponseWriter, r *http.Request, head *models.Recipe) {
	var payload scaleRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(r.Context(), "invalid scale payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	scaled, err := units.ScaleRecipe(*head, payload.Factor)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "factor must be greater than zero")
		return
	}

	if raw := strings.TrimSpace(payload.System); raw != "" {
		system, ok := units.ParseSystem(raw)
		if !ok {
			writeJSONError(w, http.StatusBadRequest, "unknown unit system")
			return
		}
		for i := range scaled.Ingredients {
			scaled.Ingredients[i] = units.ConvertToSystem(scaled.Ingredients[i], system)
		}
	}

	for i := range scaled.Ingredients {
		ingredient := &scaled.Ingredients[i]
		if unit, ok := units.Parse(ingredient.Unit); ok {
			ingredient.Quantity = units.RoundToPractical(ingredient.Quantity, unit)
		}
	}

	writeJSON(w, http.StatusOK, projectRecipe(&scaled))
}
