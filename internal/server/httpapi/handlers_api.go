package httpapi

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/stevegmedia/voxceleris/internal/common"
)

// parseAPIRequest reads the multiplexed request. Plain JSON bodies carry
// the payload directly; multipart bodies (used by makepost with photo
// attachments) carry it in the jsonPayload field, with files alongside.
func parseAPIRequest(r *http.Request) (*apiRequest, []*multipart.FileHeader, error) {
	contentType := r.Header.Get("Content-Type")

	req := &apiRequest{}

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, nil, err
		}
		if err := json.Unmarshal([]byte(r.FormValue("jsonPayload")), req); err != nil {
			return nil, nil, err
		}

		var files []*multipart.FileHeader
		if r.MultipartForm != nil {
			for _, headers := range r.MultipartForm.File {
				files = append(files, headers...)
			}
		}
		return req, files, nil
	}

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return nil, nil, err
	}
	return req, nil, nil
}

// handleAPI dispatches the single /api endpoint on the "endpoint" field.
// The session gate has already resolved the caller identity.
func (s *HTTPServer) handleAPI(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := UserIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "You are not logged in.")
		return
	}

	req, files, err := parseAPIRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	switch req.Endpoint {
	case "posts":
		s.apiPosts(w, r, userID)
	case "makepost":
		s.apiMakePost(w, r, userID, req, files)
	case "gallery":
		s.apiGallery(w, r, userID)
	case "follow":
		s.apiFollow(w, r, userID, req)
	case "unfollow":
		s.apiUnfollow(w, r, userID, req)
	case "following":
		s.apiFollowing(w, r, userID)
	case "followers":
		s.apiFollowers(w, r, userID)
	case "people":
		s.apiPeople(w, r, userID)
	default:
		writeError(w, http.StatusBadRequest, "Invalid endpoint.")
	}
}

func (s *HTTPServer) apiPosts(w http.ResponseWriter, r *http.Request, userID int64) {
	feed, err := s.posts.Feed(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, feed)
}

func (s *HTTPServer) apiMakePost(w http.ResponseWriter, r *http.Request, userID int64, req *apiRequest, files []*multipart.FileHeader) {
	ctx := r.Context()

	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "Message is required.")
		return
	}

	// Store the blobs first; the database rows are written in one
	// transaction afterwards.
	var photoURLs []string
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "Failed to upload image.")
			return
		}
		url, err := s.photos.Save(ctx, fh.Filename, f)
		f.Close()
		if err != nil {
			s.logger.Error(ctx, "post photo upload failed", "error", err)
			writeError(w, http.StatusBadGateway, "Failed to upload image.")
			return
		}
		photoURLs = append(photoURLs, url)
	}

	if _, err := s.posts.MakePost(ctx, userID, req.Message, photoURLs); err != nil {
		writeServiceError(w, err)
		return
	}

	writeMessage(w, "Post created successfully")
}

func (s *HTTPServer) apiGallery(w http.ResponseWriter, r *http.Request, userID int64) {
	gallery, err := s.posts.Gallery(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, gallery)
}

func (s *HTTPServer) apiFollow(w http.ResponseWriter, r *http.Request, userID int64, req *apiRequest) {
	if req.Username == "" {
		writeError(w, http.StatusBadRequest, "Username is required.")
		return
	}

	if err := s.follows.Follow(r.Context(), userID, req.Username); err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			writeError(w, http.StatusNotFound, "User does not exist.")
		default:
			writeServiceError(w, err)
		}
		return
	}

	writeMessage(w, "Followed user successfully.")
}

func (s *HTTPServer) apiUnfollow(w http.ResponseWriter, r *http.Request, userID int64, req *apiRequest) {
	if req.Username == "" {
		writeError(w, http.StatusBadRequest, "Username is required.")
		return
	}

	if err := s.follows.Unfollow(r.Context(), userID, req.Username); err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			writeError(w, http.StatusNotFound, "User does not exist.")
		default:
			writeServiceError(w, err)
		}
		return
	}

	writeMessage(w, "Unfollowed user successfully.")
}

func (s *HTTPServer) apiFollowing(w http.ResponseWriter, r *http.Request, userID int64) {
	following, err := s.follows.Following(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, following)
}

func (s *HTTPServer) apiFollowers(w http.ResponseWriter, r *http.Request, userID int64) {
	followers, err := s.follows.Followers(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, followers)
}

func (s *HTTPServer) apiPeople(w http.ResponseWriter, r *http.Request, userID int64) {
	people, err := s.directory.People(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, people)
}
