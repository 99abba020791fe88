package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/gamevault/internal/api/apierr"
	"github.com/mcoot/gamevault/internal/api/middleware"
	"github.com/mcoot/gamevault/internal/api/request"
	"github.com/mcoot/gamevault/internal/api/response"
	"github.com/mcoot/gamevault/internal/services/games"
	"github.com/mcoot/gamevault/internal/services/search"
)

// GamesHandler handles custom game and search endpoints
type GamesHandler struct {
	gamesService  *games.Service
	searchService *search.Service
	errs          *apierr.Writer
}

// NewGamesHandler creates a new games handler
func NewGamesHandler(gamesService *games.Service, searchService *search.Service, errs *apierr.Writer) *GamesHandler {
	return &GamesHandler{
		gamesService:  gamesService,
		searchService: searchService,
		errs:          errs,
	}
}

// Create handles POST /api/games
func (h *GamesHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.MustGetClaims(r.Context())

	var req request.CreateGameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errs.Write(w, r, err)
		return
	}

	input, err := req.ToModel()
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	game, err := h.gamesService.Create(r.Context(), input, claims.UserID)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.CreateGameResponse{
		Message: "Game created",
		Game: response.CreatedGame{
			ID:   string(game.ID),
			Name: game.Name,
		},
	})
}

// Search handles GET /api/games/search
func (h *GamesHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	result, err := h.searchService.Search(r.Context(), search.Query{
		Text:     q.Get("q"),
		Platform: q.Get("platform"),
		Genre:    q.Get("genre"),
		Year:     q.Get("year"),
	})
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ListFromSearch(result))
}

// ListCustom handles GET /api/games/custom
func (h *GamesHandler) ListCustom(w http.ResponseWriter, r *http.Request) {
	list, err := h.gamesService.ListRecent(r.Context())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ListFromCustom(list))
}

// Get handles GET /api/games/{id}
func (h *GamesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	detail, err := h.searchService.Detail(r.Context(), id)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameDetailFromModel(detail))
}
