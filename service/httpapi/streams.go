package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/QuangTung97/eventstore/model"
	"github.com/QuangTung97/eventstore/service/eventstore"
	"github.com/gin-gonic/gin"
)

type createStreamRequest struct {
	Name     string         `json:"name"`
	Metadata model.Metadata `json:"metadata"`
	Events   []EventJSON    `json:"events"`
}

type streamResponse struct {
	Name     string         `json:"name"`
	Metadata model.Metadata `json:"metadata"`
}

type namesResponse struct {
	Names []string `json:"names"`
}

func streamName(c *gin.Context) model.StreamName {
	return model.StreamName(c.Param("name"))
}

func (s *Server) handleCreateStream(c *gin.Context) {
	var req createStreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, badRequest("invalid body: %v", err))
		return
	}
	if req.Name == "" {
		writeError(c, badRequest("missing stream name"))
		return
	}

	events, err := DecodeEvents(req.Events)
	if err != nil {
		writeError(c, err)
		return
	}

	s.withStore(c, func(ctx context.Context, store eventstore.IEventStore) error {
		err := store.Create(ctx, model.Stream{
			Name:     model.StreamName(req.Name),
			Metadata: req.Metadata,
			Events:   events,
		})
		if err != nil {
			return err
		}
		c.JSON(http.StatusCreated, streamResponse{Name: req.Name, Metadata: req.Metadata})
		return nil
	})
}

func (s *Server) handleHasStream(c *gin.Context) {
	s.withStore(c, func(ctx context.Context, store eventstore.IEventStore) error {
		exists, err := store.HasStream(ctx, streamName(c))
		if err != nil {
			return err
		}
		if !exists {
			c.Status(http.StatusNotFound)
			return nil
		}
		c.Status(http.StatusOK)
		return nil
	})
}

func (s *Server) handleFetchStream(c *gin.Context) {
	name := streamName(c)
	metadata, err := s.registry.FetchStreamMetadata(c.Request.Context(), name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, streamResponse{Name: name.String(), Metadata: metadata})
}

func (s *Server) handleUpdateStreamMetadata(c *gin.Context) {
	var metadata model.Metadata
	if err := c.ShouldBindJSON(&metadata); err != nil {
		writeError(c, badRequest("invalid body: %v", err))
		return
	}

	if err := s.registry.UpdateStreamMetadata(c.Request.Context(), streamName(c), metadata); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDeleteStream(c *gin.Context) {
	s.withStore(c, func(ctx context.Context, store eventstore.IEventStore) error {
		if err := store.Delete(ctx, streamName(c)); err != nil {
			return err
		}
		c.Status(http.StatusNoContent)
		return nil
	})
}

func parsePaging(c *gin.Context) (limit uint64, offset uint64, err error) {
	if v := c.Query("limit"); v != "" {
		limit, err = strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, 0, badRequest("invalid limit %q", v)
		}
	}
	if v := c.Query("offset"); v != "" {
		offset, err = strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, 0, badRequest("invalid offset %q", v)
		}
	}
	return limit, offset, nil
}

func (s *Server) handleFetchStreamNames(c *gin.Context) {
	limit, offset, err := parsePaging(c)
	if err != nil {
		writeError(c, err)
		return
	}

	names, err := s.registry.FetchStreamNames(c.Request.Context(), c.Query("prefix"), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := namesResponse{Names: make([]string, 0, len(names))}
	for _, name := range names {
		resp.Names = append(resp.Names, name.String())
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleFetchCategoryNames(c *gin.Context) {
	limit, offset, err := parsePaging(c)
	if err != nil {
		writeError(c, err)
		return
	}

	categories, err := s.registry.FetchCategoryNames(c.Request.Context(), c.Query("prefix"), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	c.JSON(http.StatusOK, namesResponse{Names: categories})
}
