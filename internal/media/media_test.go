package media

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeFileName(t *testing.T) {
	assert.Equal(t, "my-photo--1-.png", SafeFileName("my photo (1).png"))
	assert.Equal(t, "a.b_c-d", SafeFileName("--a.b_c-d--"))
	assert.Equal(t, "", SafeFileName("***"))
}

func TestBuildKey(t *testing.T) {
	key := BuildKey("hero shot.jpg")
	assert.True(t, strings.HasPrefix(key, "projects/"))
	assert.True(t, strings.HasSuffix(key, "-hero-shot.jpg"))
	assert.Len(t, key, len("projects/")+36+len("-hero-shot.jpg"))
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/projects/a.png", PublicURL("https://cdn.example.com/", "projects/a.png"))
	assert.Equal(t, "/media/projects/a.png", PublicURL("", "projects/a.png"))
	assert.Equal(t, "/media/projects/a.png", PublicURL("/media", "projects/a.png"))
}

type fakePresignAPI struct {
	in      *s3.PutObjectInput
	expires time.Duration
}

func (f *fakePresignAPI) PresignPutObject(_ context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	f.in = in
	opts := s3.PresignOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	f.expires = opts.Expires
	return &v4.PresignedHTTPRequest{URL: "https://bucket.s3.amazonaws.com/" + *in.Key + "?sig=1", Method: http.MethodPut}, nil
}

func TestS3Presigner(t *testing.T) {
	api := &fakePresignAPI{}
	p := &S3Presigner{client: api, bucket: "media-bucket", expires: 15 * time.Minute}

	url, err := p.PresignPut(context.Background(), "projects/x.png", "image/png")
	require.NoError(t, err)
	assert.Contains(t, url, "projects/x.png")
	assert.Equal(t, "media-bucket", *api.in.Bucket)
	assert.Equal(t, "image/png", *api.in.ContentType)
	assert.Equal(t, 15*time.Minute, api.expires)
}

type stubPresigner struct{ err error }

func (s stubPresigner) PresignPut(_ context.Context, key, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "https://upload.example.com/" + key, nil
}

func presignRouter(p Presigner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(p, "https://cdn.example.com").Register(r.Group("/api/images"))
	return r
}

func postPresign(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/images/presign", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPresignHandler(t *testing.T) {
	t.Run("returns key and urls", func(t *testing.T) {
		w := postPresign(presignRouter(stubPresigner{}), `{"file_name":"cover art.png","content_type":"image/png"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp presignResp
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, strings.HasPrefix(resp.Key, "projects/"))
		assert.Equal(t, "https://upload.example.com/"+resp.Key, resp.UploadURL)
		assert.Equal(t, "https://cdn.example.com/"+resp.Key, resp.PublicURL)
	})

	t.Run("missing bucket", func(t *testing.T) {
		w := postPresign(presignRouter(nil), `{"file_name":"a.png","content_type":"image/png"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		w := postPresign(presignRouter(stubPresigner{}), `{"file_name":"","content_type":"image/png"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("signer failure", func(t *testing.T) {
		w := postPresign(presignRouter(stubPresigner{err: errors.New("boom")}), `{"file_name":"a.png","content_type":"image/png"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
