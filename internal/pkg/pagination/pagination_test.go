package pagination

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/folio/internal/database/dbtest"
	"github.com/mx-space/folio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ctx(target string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

func TestFromContext(t *testing.T) {
	assert.Equal(t, Query{Page: 1, Size: 10}, FromContext(ctx("/messages")))
	assert.Equal(t, Query{Page: 3, Size: 20}, FromContext(ctx("/messages?page=3&size=20")))
	assert.Equal(t, Query{Page: 1, Size: MaxSize}, FromContext(ctx("/messages?page=-2&size=500")))
	assert.Equal(t, Query{Page: 1, Size: 10}, FromContext(ctx("/messages?page=x&size=y")))
}

func TestRequested(t *testing.T) {
	assert.False(t, Requested(ctx("/messages")))
	assert.True(t, Requested(ctx("/messages?page=1")))
	assert.True(t, Requested(ctx("/messages?size=5")))
}

func TestPaginate(t *testing.T) {
	db := dbtest.New(t)
	for i := 0; i < 7; i++ {
		require.NoError(t, db.Create(&models.Message{Name: fmt.Sprint(i), Email: "a@b.c"}).Error)
	}

	var page []models.Message
	meta, err := Paginate(db.Model(&models.Message{}).Order("name ASC"), Query{Page: 3, Size: 3}, &page)
	require.NoError(t, err)

	assert.EqualValues(t, 7, meta.Total)
	assert.Equal(t, 3, meta.TotalPage)
	assert.False(t, meta.HasNextPage)
	require.Len(t, page, 1)
	assert.Equal(t, "6", page[0].Name)
}
