package transport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	commentRedis "github.com/ds124wfegd/comment-board/internal/database/redis"
	"github.com/ds124wfegd/comment-board/internal/entity"
	"github.com/ds124wfegd/comment-board/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFlowRouter wires the real service and the Redis store over miniredis.
func newFlowRouter(t *testing.T) *gin.Engine {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	gin.SetMode(gin.TestMode)
	svc := service.NewCommentService(commentRedis.NewCommentRepository(client))
	return InitRoutes(NewCommentHandler(svc))
}

func listPage(t *testing.T, router *gin.Engine, query string) entity.CommentsPage {
	t.Helper()

	w := doRequest(router, http.MethodGet, "/comments"+query, "")
	require.Equal(t, http.StatusOK, w.Code)

	var page entity.CommentsPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	return page
}

func likeComment(t *testing.T, router *gin.Engine, id int64) (int, int64) {
	t.Helper()

	w := doRequest(router, http.MethodPost, fmt.Sprintf("/comments/%d/like", id), "")
	var resp entity.LikeResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w.Code, resp.Likes
}

func TestFlow_CreateThenList(t *testing.T) {
	router := newFlowRouter(t)

	w := doRequest(router, http.MethodPost, "/comments", `{"name":"Alice","content":"hi"}`)
	require.Equal(t, http.StatusOK, w.Code)

	page := listPage(t, router, "?page=1")
	require.Len(t, page.Data, 1)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, "Alice", page.Data[0].Name)
	assert.Equal(t, "hi", page.Data[0].Content)
	assert.Equal(t, int64(0), page.Data[0].Likes)
	assert.Equal(t, "just now", page.Data[0].TimeText)
}

func TestFlow_PagingNewestFirst(t *testing.T) {
	router := newFlowRouter(t)
	for i := 1; i <= 7; i++ {
		body := fmt.Sprintf(`{"name":"user%d","content":"comment %d"}`, i, i)
		require.Equal(t, http.StatusOK, doRequest(router, http.MethodPost, "/comments", body).Code)
	}

	seen := map[int64]bool{}
	var lastID int64 = 1 << 62
	for p := 1; p <= 3; p++ {
		page := listPage(t, router, fmt.Sprintf("?page=%d&pageSize=3", p))

		assert.Equal(t, int64(7), page.Total)
		assert.LessOrEqual(t, len(page.Data), 3)
		for _, c := range page.Data {
			assert.Less(t, c.ID, lastID)
			assert.False(t, seen[c.ID])
			seen[c.ID] = true
			lastID = c.ID
		}
	}
	assert.Len(t, seen, 7)
}

func TestFlow_LikeTwice(t *testing.T) {
	router := newFlowRouter(t)
	require.Equal(t, http.StatusOK, doRequest(router, http.MethodPost, "/comments", `{"name":"Alice","content":"hi"}`).Code)
	id := listPage(t, router, "").Data[0].ID

	code, likes := likeComment(t, router, id)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(1), likes)

	code, likes = likeComment(t, router, id)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(2), likes)
}

func TestFlow_LikeUnknownLeavesOthersAlone(t *testing.T) {
	router := newFlowRouter(t)
	require.Equal(t, http.StatusOK, doRequest(router, http.MethodPost, "/comments", `{"name":"Alice","content":"hi"}`).Code)

	code, _ := likeComment(t, router, 999999)
	assert.Equal(t, http.StatusNotFound, code)

	page := listPage(t, router, "")
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, int64(0), page.Data[0].Likes)
}

func TestFlow_InvalidCreateInsertsNothing(t *testing.T) {
	router := newFlowRouter(t)

	for _, body := range []string{`{"name":"","content":"hi"}`, `{"name":"Alice"}`} {
		w := doRequest(router, http.MethodPost, "/comments", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	assert.Equal(t, int64(0), listPage(t, router, "").Total)
}

func TestFlow_NegativePageIsServerError(t *testing.T) {
	router := newFlowRouter(t)

	w := doRequest(router, http.MethodGet, "/comments?page=-1", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestFlow_HugePagingReturnsExistingRows(t *testing.T) {
	router := newFlowRouter(t)
	for _, name := range []string{"Alice", "Bob"} {
		w := doRequest(router, http.MethodPost, "/comments", fmt.Sprintf(`{"name":%q,"content":"hi"}`, name))
		require.Equal(t, http.StatusOK, w.Code)
	}

	all := listPage(t, router, "?pageSize=1099511627776")
	assert.Equal(t, int64(2), all.Total)
	assert.Len(t, all.Data, 2)

	beyond := listPage(t, router, "?page=99999999999999999999&pageSize=3")
	assert.Equal(t, int64(2), beyond.Total)
	assert.NotNil(t, beyond.Data)
	assert.Empty(t, beyond.Data)
}

func TestFlow_LikeIDWithTrailingGarbage(t *testing.T) {
	router := newFlowRouter(t)
	w := doRequest(router, http.MethodPost, "/comments", `{"name":"Alice","content":"hi"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodPost, "/comments/1abc/like", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"likes":1}`, w.Body.String())
}
