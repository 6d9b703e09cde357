package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/existflow/taskboard/internal/logger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var errEmailTaken = errors.New("email already registered")

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}

// storeError maps a Documents error to a response
func storeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUnknownCollection):
		return c.JSON(http.StatusNotFound, map[string]any{})
	case errors.Is(err, ErrConflict):
		return errorJSON(c, http.StatusConflict, "id already exists")
	case errors.Is(err, errEmailTaken):
		return errorJSON(c, http.StatusConflict, err.Error())
	}
	logger.Error("Backend storage error", logger.F("error", err), logger.F("uri", c.Request().RequestURI))
	return errorJSON(c, http.StatusInternalServerError, "internal error")
}

func bindDocument(c echo.Context) (Document, error) {
	doc := Document{}
	if err := json.NewDecoder(c.Request().Body).Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Server) handleList(c echo.Context) error {
	collection := c.Param("collection")
	docs, err := s.docs.List(c.Request().Context(), collection)
	if err != nil {
		return storeError(c, err)
	}

	query := c.QueryParams()
	password, byPassword := "", false
	if collection == usersCollection && query.Has("password") {
		password, byPassword = query.Get("password"), true
		query.Del("password")
	}
	filters := parseFilters(query)

	out := make([]Document, 0, len(docs))
	for _, doc := range docs {
		if !matchAll(doc, filters) {
			continue
		}
		if byPassword && !checkPassword(doc, password) {
			continue
		}
		out = append(out, public(collection, doc))
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleGet(c echo.Context) error {
	collection := c.Param("collection")
	doc, err := s.docs.Get(c.Request().Context(), collection, c.Param("id"))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, public(collection, doc))
}

func (s *Server) handleCreate(c echo.Context) error {
	ctx := c.Request().Context()
	collection := c.Param("collection")
	if _, err := tableFor(collection); err != nil {
		return storeError(c, err)
	}

	doc, err := bindDocument(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}
	if doc.ID() == "" {
		doc["id"] = uuid.NewString()
	} else {
		doc["id"] = doc.ID()
	}

	if collection == usersCollection {
		if err := s.prepareUser(ctx, doc, true); err != nil {
			return storeError(c, err)
		}
	}

	if err := s.docs.Insert(ctx, collection, doc); err != nil {
		return storeError(c, err)
	}
	logger.Debug("Document created", logger.F("collection", collection), logger.F("id", doc.ID()))
	return c.JSON(http.StatusCreated, public(collection, doc))
}

// handleReplace stores the body as the whole document. A user replaced
// without a password keeps the stored one.
func (s *Server) handleReplace(c echo.Context) error {
	ctx := c.Request().Context()
	collection, id := c.Param("collection"), c.Param("id")
	existing, err := s.docs.Get(ctx, collection, id)
	if err != nil {
		return storeError(c, err)
	}

	doc, err := bindDocument(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}
	doc["id"] = id

	if collection == usersCollection {
		if _, ok := doc["password"]; !ok {
			doc["password"] = existing["password"]
		}
		if err := s.prepareUser(ctx, doc, true); err != nil {
			return storeError(c, err)
		}
	}

	if err := s.docs.Update(ctx, collection, doc); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, public(collection, doc))
}

// handlePatch merges the top level fields of the body into the document
func (s *Server) handlePatch(c echo.Context) error {
	ctx := c.Request().Context()
	collection, id := c.Param("collection"), c.Param("id")
	doc, err := s.docs.Get(ctx, collection, id)
	if err != nil {
		return storeError(c, err)
	}

	patch, err := bindDocument(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}
	for k, v := range patch {
		doc[k] = v
	}
	doc["id"] = id

	if collection == usersCollection {
		_, emailChanged := patch["email"]
		if err := s.prepareUser(ctx, doc, emailChanged); err != nil {
			return storeError(c, err)
		}
	}

	if err := s.docs.Update(ctx, collection, doc); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, public(collection, doc))
}

func (s *Server) handleDelete(c echo.Context) error {
	if err := s.docs.Delete(c.Request().Context(), c.Param("collection"), c.Param("id")); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{})
}

// prepareUser rejects an email registered by another user when checkEmail is
// set, then hashes the password
func (s *Server) prepareUser(ctx context.Context, doc Document, checkEmail bool) error {
	if checkEmail {
		users, err := s.docs.List(ctx, usersCollection)
		if err != nil {
			return err
		}
		if emailTaken(users, stringify(doc["email"]), doc.ID()) {
			return errEmailTaken
		}
	}
	return hashPassword(doc)
}
