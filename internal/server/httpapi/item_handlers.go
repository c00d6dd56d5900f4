package httpapi

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/pantrykeeper/internal/inventory"
	"github.com/dmitrijs2005/pantrykeeper/internal/pantry"
	"github.com/dmitrijs2005/pantrykeeper/internal/report"
	"github.com/dmitrijs2005/pantrykeeper/internal/timex"
	"github.com/dmitrijs2005/pantrykeeper/internal/views"
	"github.com/gin-gonic/gin"
)

const defaultExpiringDays = 3

// itemRequest is the body of POST /api/items. ID and owner are never read
// from the client.
type itemRequest struct {
	Name           string          `json:"name"`
	Quantity       string          `json:"quantity"`
	ExpirationDate timex.Date      `json:"expirationDate"`
	Category       pantry.Category `json:"category"`
	ImageURL       string          `json:"imageUrl"`
}

func (s *Server) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": pantry.Categories})
}

func (s *Server) listItems(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		s.writeError(c, err)
		return
	}

	var out []pantry.Item
	err = s.sessions.Do(c.Request.Context(), currentUser(c), func(e *inventory.Engine) error {
		out = views.Apply(e.List(), q, s.now())
		return nil
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": nonNil(out)})
}

func parseQuery(c *gin.Context) (views.Query, error) {
	var q views.Query
	if v := c.Query("category"); v != "" {
		cat, ok := pantry.ParseCategory(v)
		if !ok {
			return q, invalidFields("category")
		}
		q.Category = cat
	}
	q.Search = c.Query("q")
	if v := c.Query("status"); v != "" {
		st, err := views.ParseStatus(v)
		if err != nil {
			return q, invalidFields("status")
		}
		q.Status = &st
	}
	switch c.Query("sort") {
	case "":
	case "expiration":
		q.SortByExpiration = true
	default:
		return q, invalidFields("sort")
	}
	return q, nil
}

func (s *Server) createItem(c *gin.Context) {
	var body itemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badPayload(c)
		return
	}

	ctx := c.Request.Context()
	var created pantry.Item
	err := s.sessions.Do(ctx, currentUser(c), func(e *inventory.Engine) error {
		var err error
		created, err = e.Add(ctx, pantry.Item{
			Name:           body.Name,
			Quantity:       body.Quantity,
			ExpirationDate: body.ExpirationDate,
			Category:       body.Category,
			ImageURL:       body.ImageURL,
		})
		return err
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": created})
}

func (s *Server) updateItem(c *gin.Context) {
	var patch pantry.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badPayload(c)
		return
	}

	ctx := c.Request.Context()
	var updated pantry.Item
	err := s.sessions.Do(ctx, currentUser(c), func(e *inventory.Engine) error {
		var err error
		updated, err = e.Update(ctx, c.Param("id"), patch)
		return err
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": updated})
}

func (s *Server) deleteItem(c *gin.Context) {
	ctx := c.Request.Context()
	err := s.sessions.Do(ctx, currentUser(c), func(e *inventory.Engine) error {
		return e.Delete(ctx, c.Param("id"))
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) expiringItems(c *gin.Context) {
	days := defaultExpiringDays
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(c, invalidFields("days"))
			return
		}
		days = n
	}

	var out []pantry.Item
	err := s.sessions.Do(c.Request.Context(), currentUser(c), func(e *inventory.Engine) error {
		out = views.SortByExpiration(views.ExpiringWithin(e.List(), s.now(), days))
		return nil
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days, "items": nonNil(out)})
}

func (s *Server) summary(c *gin.Context) {
	asOf := s.now()
	if v := c.Query("as_of"); v != "" {
		d, err := timex.ParseDate(v)
		if err != nil {
			s.writeError(c, invalidFields("as_of"))
			return
		}
		asOf = d.Time()
	}

	var rep report.Report
	err := s.sessions.Do(c.Request.Context(), currentUser(c), func(e *inventory.Engine) error {
		rep = report.Build(e.List(), asOf)
		return nil
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

func nonNil(items []pantry.Item) []pantry.Item {
	if items == nil {
		return []pantry.Item{}
	}
	return items
}
