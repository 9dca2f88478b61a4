package transport

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"shop-admin/internal/middleware"
	"shop-admin/internal/service"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// urlObjectID parses the named URL parameter as a document id.
func urlObjectID(r *http.Request, param string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(chi.URLParam(r, param))
}

// formUpload reads the named multipart file field into memory. A missing
// field is not an error; it simply yields no upload.
func formUpload(r *http.Request, field string) (*service.Upload, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &service.Upload{Data: data, Filename: header.Filename}, nil
}

// formValue reports whether the named multipart field was supplied,
// distinguishing an absent field from an empty one.
func formValue(r *http.Request, field string) (string, bool) {
	if r.MultipartForm == nil {
		return "", false
	}
	vals, ok := r.MultipartForm.Value[field]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// paginationParams reads limit/page query parameters, leaving zero values
// for the service layer defaults when absent or malformed.
func paginationParams(r *http.Request) (limit, page int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	return limit, page
}

// respondBadInput distinguishes field validation failures from undecodable
// bodies.
func respondBadInput(w http.ResponseWriter, logger *zap.Logger, err error) {
	logger.Debug("Request validation failed", zap.Error(err))

	if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
		middleware.RespondWithValidationErrors(w, validationErrors)
		return
	}

	middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
}
