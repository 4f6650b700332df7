package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kova98/replydraft.api/enums"
	"github.com/kova98/replydraft.api/models"
	"github.com/stretchr/testify/assert"
)

func post(t *testing.T, path, body string) *http.Request {
	t.Helper()
	return httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
}

func TestFetchPost_InvalidBody(t *testing.T) {
	h := NewRedditHandler(nil, nil)

	res := h.FetchPost(httptest.NewRecorder(), post(t, "/api/reddit/fetch", "{not json"))

	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestFetchPost_MissingURL(t *testing.T) {
	h := NewRedditHandler(nil, nil)

	res := h.FetchPost(httptest.NewRecorder(), post(t, "/api/reddit/fetch", `{"url":""}`))

	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "url is required", res.Body.(ErrorResponse).Message)
}

func TestManualPost_RequiresURL(t *testing.T) {
	h := NewRedditHandler(nil, nil)

	res := h.ManualPost(httptest.NewRecorder(), post(t, "/api/reddit/manual", `{"title":"t","content":"c"}`))

	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestManualPost_RequiresTitleOrContent(t *testing.T) {
	h := NewRedditHandler(nil, nil)

	res := h.ManualPost(httptest.NewRecorder(), post(t, "/api/reddit/manual", `{"url":"https://reddit.com/r/go/comments/1/x"}`))

	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "title or content is required", res.Body.(ErrorResponse).Message)
}

func TestGenerateReply_MissingURL(t *testing.T) {
	h := NewReplyHandler(nil, nil, nil, nil, nil, "")

	res := h.GenerateReply(httptest.NewRecorder(), post(t, "/api/reply/generate", `{"customization":{"length":"small","mood":"friendly","tone":"casual"}}`))

	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "redditUrl is required", res.Body.(ErrorResponse).Message)
}

func TestGenerateReply_InvalidCustomization(t *testing.T) {
	h := NewReplyHandler(nil, nil, nil, nil, nil, "")
	body := `{"redditUrl":"https://reddit.com/r/go/comments/1/x","customization":{"length":"gigantic","mood":"friendly","tone":"casual"}}`

	res := h.GenerateReply(httptest.NewRecorder(), post(t, "/api/reply/generate", body))

	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestGetRepliesForPost_InvalidID(t *testing.T) {
	h := NewReplyHandler(nil, nil, nil, nil, nil, "")
	req := httptest.NewRequest(http.MethodGet, "/api/reply/abc", nil)
	req.SetPathValue("postId", "abc")

	res := h.GetRepliesForPost(httptest.NewRecorder(), req)

	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestTestKey_MissingKey(t *testing.T) {
	h := NewSettingsHandler(nil, nil)

	res := h.TestKey(httptest.NewRecorder(), post(t, "/api/settings/test-key", `{"apiKey":""}`))

	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "apiKey is required", res.Body.(ErrorResponse).Message)
}

func TestDecodeCustomization_CorruptSnapshot(t *testing.T) {
	customization := decodeCustomization(7, []byte("{not json"))

	assert.Equal(t, models.Customization{}, customization)
}

func TestDecodeCustomization_ValidSnapshot(t *testing.T) {
	raw := []byte(`{"direction":"be nice","length":"small","mood":"witty","tone":"casual"}`)

	customization := decodeCustomization(7, raw)

	assert.Equal(t, "be nice", customization.Direction)
	assert.Equal(t, "small", customization.Length)
	assert.Equal(t, enums.MoodWitty, customization.Mood)
	assert.Equal(t, enums.ToneCasual, customization.Tone)
}

func TestInternalError_UserMessage(t *testing.T) {
	res := InternalError(errors.New("dial tcp: connection refused"), "fetch reddit post")

	assert.Equal(t, http.StatusInternalServerError, res.Code)
	assert.Error(t, res.Error)
	assert.Equal(t, "A network error occurred. Check your connection and try again.", res.Body.(ErrorResponse).Message)
}

func TestResultConstructors(t *testing.T) {
	assert.Equal(t, http.StatusOK, Ok(nil).Code)
	assert.Equal(t, http.StatusCreated, Created(7).Code)
	assert.Equal(t, 7, Created(7).Body.(CreatedResponse).ID)
	assert.Equal(t, http.StatusNotFound, NotFound("gone").Code)
	assert.Equal(t, "gone", NotFound("gone").Body.(ErrorResponse).Message)
}
