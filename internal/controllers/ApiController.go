package controllers

import (
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
	"github.com/spf13/cast"

	"vsd/internal/models"
	"vsd/internal/providers"
	"vsd/internal/services"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger  providers.Logger
	auth    services.AuthServiceInterface
	catalog services.VideoCatalogInterface
	uploads services.UploadServiceInterface
	cache   providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, auth services.AuthServiceInterface, catalog services.VideoCatalogInterface, uploads services.UploadServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		auth:    auth,
		catalog: catalog,
		uploads: uploads,
		cache:   cache,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// --- session ---

func (ac *ApiController) Bootstrap(w http.ResponseWriter, r *http.Request) {
	session := ac.auth.Bootstrap()
	ac.logger.Infof(providers.GetLogTypeByRequestType(r.Method), "Bootstrap: authenticated=%t", session.Authenticated)
	writeJSON(w, http.StatusOK, session)
}

func (ac *ApiController) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var account models.UserAccount
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request")
		return
	}
	v := validate.Struct(account)
	if !v.Validate() {
		writeError(w, http.StatusUnprocessableEntity, v.Errors.One())
		return
	}
	writeJSON(w, http.StatusOK, ac.auth.Login(account))
}

func (ac *ApiController) Logout(w http.ResponseWriter, _ *http.Request) {
	ac.auth.Logout()
	w.WriteHeader(http.StatusNoContent)
}

// --- catalog ---

func (ac *ApiController) GetVideos(w http.ResponseWriter, r *http.Request) {
	limit := cast.ToInt(r.URL.Query().Get("limit"))
	cacheKey := "videos:" + cast.ToString(limit)
	ac.serveFromCacheOrCompute(w, cacheKey, func() (any, error) {
		videos := ac.catalog.List()
		if limit > 0 && limit < len(videos) {
			videos = videos[:limit]
		}
		return videos, nil
	})
}

func (ac *ApiController) FilterVideos(w http.ResponseWriter, r *http.Request) {
	creator := r.URL.Query().Get("creator")
	category := r.URL.Query().Get("category")

	switch {
	case creator != "":
		ac.serveFromCacheOrCompute(w, "videos:creator:"+creator, func() (any, error) {
			return ac.catalog.ByCreator(creator), nil
		})
	case category != "":
		ac.serveFromCacheOrCompute(w, "videos:category:"+category, func() (any, error) {
			return ac.catalog.ByCategory(category), nil
		})
	default:
		writeError(w, http.StatusBadRequest, "creator or category is required")
	}
}

func (ac *ApiController) CreateVideo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var video models.VideoMetadata
	if err := json.NewDecoder(r.Body).Decode(&video); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request")
		return
	}
	if err := ac.catalog.Create(video); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, video)
}

func (ac *ApiController) UpdateVideo(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request")
		return
	}
	video, ok := ac.catalog.Update(id, patch)
	if !ok {
		writeError(w, http.StatusNotFound, "video not found")
		return
	}
	writeJSON(w, http.StatusOK, video)
}

func (ac *ApiController) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": ac.catalog.Delete(id)})
}

func (ac *ApiController) AddView(w http.ResponseWriter, r *http.Request) {
	ac.counterUpdate(w, r, ac.catalog.AddView)
}

func (ac *ApiController) AddLike(w http.ResponseWriter, r *http.Request) {
	ac.counterUpdate(w, r, ac.catalog.AddLike)
}

func (ac *ApiController) counterUpdate(w http.ResponseWriter, r *http.Request, bump func(string) (models.VideoMetadata, bool)) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	video, ok := bump(id)
	if !ok {
		writeError(w, http.StatusNotFound, "video not found")
		return
	}
	writeJSON(w, http.StatusOK, video)
}

// --- upload ---

type uploadRequest struct {
	TotalBytes int64 `json:"totalBytes"`
	services.UploadSubmission
}

func (ac *ApiController) StartUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request")
		return
	}
	fileID, err := ac.uploads.Start(req.TotalBytes, req.UploadSubmission)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	ac.logger.Infof(providers.GetLogTypeByRequestType(r.Method), "Upload %s started: %s", fileID, services.FormatFileSize(req.TotalBytes))
	writeJSON(w, http.StatusAccepted, map[string]string{"fileId": fileID})
}

func (ac *ApiController) UploadProgress(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	progress, ok := ac.uploads.Progress(id)
	if !ok {
		writeError(w, http.StatusNotFound, "no active transfer")
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// --- admin ---

// AdminUsers lists the registry. Privilege is identity-based: the caller's
// account id must equal the stored admin pointer.
func (ac *ApiController) AdminUsers(w http.ResponseWriter, r *http.Request) {
	accountID := r.Header.Get("X-Account-Id")
	if !ac.auth.IsAdmin(accountID) {
		writeError(w, http.StatusForbidden, "admin access required")
		return
	}
	writeJSON(w, http.StatusOK, ac.auth.Registry())
}
