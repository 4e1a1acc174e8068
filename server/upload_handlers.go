package server

import (
	"errors"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	liberrors "github.com/jrsteele09/go-lab-site/internal/errors"
	"github.com/jrsteele09/go-lab-site/storage"
	"github.com/rs/zerolog/log"
)

type uploadType struct {
	prefix string
	ext    string
}

// allowedUploadTypes maps accepted content types to where they are stored.
// The stored extension always comes from here, never from the client's filename,
// so the file server can only ever answer with one of these types.
var allowedUploadTypes = map[string]uploadType{
	"image/jpeg":      {prefix: "images", ext: ".jpg"},
	"image/png":       {prefix: "images", ext: ".png"},
	"image/webp":      {prefix: "images", ext: ".webp"},
	"image/gif":       {prefix: "images", ext: ".gif"},
	"application/pdf": {prefix: "documents", ext: ".pdf"},
}

type uploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// UploadHandler stores the multipart "file" field and returns its key and URL
func (s *Server) UploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		maxBytes := s.config.GetMaxUploadBytes()
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1<<20) // room for multipart framing
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeJSONError(w, http.StatusRequestEntityTooLarge, "file too large")
				return
			}
			writeJSONError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("file")
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "missing file field")
			return
		}
		defer file.Close()

		if header.Size > maxBytes {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}

		contentType := uploadContentType(header.Header.Get("Content-Type"), header.Filename)
		kind, ok := allowedUploadTypes[contentType]
		if !ok {
			writeJSONError(w, http.StatusUnsupportedMediaType, "unsupported file type")
			return
		}

		key := storage.NewObjectKey(kind.prefix, kind.ext)
		if err := s.objects.Upload(r.Context(), key, contentType, file); err != nil {
			writeError(w, r, err)
			return
		}
		url, err := s.objects.URL(r.Context(), key)
		if err != nil {
			writeError(w, r, err)
			return
		}

		log.Info().Str("key", key).Int64("size", header.Size).Str("content_type", contentType).Msg("Upload stored")
		writeJSON(w, http.StatusCreated, uploadResponse{Key: key, URL: url})
	}
}

// DeleteUploadHandler removes the object named by the rest of the path
func (s *Server) DeleteUploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "*")
		if err := storage.ValidateKey(key); err != nil {
			writeError(w, r, err)
			return
		}
		if err := s.objects.Delete(r.Context(), key); err != nil {
			if errors.Is(err, liberrors.ErrNotFound) {
				writeJSONError(w, http.StatusNotFound, "not found")
				return
			}
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// uploadContentType trusts the part header and falls back to the file extension
func uploadContentType(declared, filename string) string {
	if mediaType, _, err := mime.ParseMediaType(declared); err == nil && mediaType != "application/octet-stream" {
		return strings.ToLower(mediaType)
	}
	if byExt := mime.TypeByExtension(strings.ToLower(path.Ext(filename))); byExt != "" {
		if mediaType, _, err := mime.ParseMediaType(byExt); err == nil {
			return mediaType
		}
	}
	return "application/octet-stream"
}
