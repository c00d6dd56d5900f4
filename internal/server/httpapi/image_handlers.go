package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"slices"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/inventory"
	"github.com/dmitrijs2005/pantrykeeper/internal/pantry"
	"github.com/gin-gonic/gin"
)

// uploadImage stores the multipart "file" and points the item's ImageURL
// at it. The upload runs outside the session lock; the item is checked
// before and updated after.
func (s *Server) uploadImage(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUser(c)
	id := c.Param("id")

	fh, err := c.FormFile("file")
	if err != nil {
		s.writeError(c, invalidFields("file"))
		return
	}
	if fh.Size > s.maxImageSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("image larger than %d bytes", s.maxImageSize)})
		return
	}

	f, err := fh.Open()
	if err != nil {
		s.writeError(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.maxImageSize))
	if err != nil {
		s.writeError(c, err)
		return
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	err = s.sessions.Do(ctx, userID, func(e *inventory.Engine) error {
		if !slices.ContainsFunc(e.List(), func(it pantry.Item) bool { return it.ID == id }) {
			return common.ErrorNotFound
		}
		return nil
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	url, err := s.images.Upload(ctx, userID, contentType, data)
	if err != nil {
		s.writeError(c, err)
		return
	}

	var updated pantry.Item
	err = s.sessions.Do(ctx, userID, func(e *inventory.Engine) error {
		var err error
		updated, err = e.Update(ctx, id, pantry.Patch{ImageURL: &url})
		return err
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": updated})
}

func (s *Server) presignImage(c *gin.Context) {
	var body struct {
		ContentType string `json:"content_type"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badPayload(c)
		return
	}

	up, err := s.images.PresignUpload(c.Request.Context(), currentUser(c), body.ContentType)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, up)
}
