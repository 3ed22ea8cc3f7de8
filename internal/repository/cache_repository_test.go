package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/noah-isme/clinic-readiness-api/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	ctx := context.Background()

	var dest map[string]int
	assert.ErrorIs(t, repo.Get(ctx, "readiness:child:1", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(ctx, "readiness:child:1", map[string]int{"score": 1}, time.Minute))
	assert.NoError(t, repo.Delete(ctx, "readiness:child:1"))
	assert.NoError(t, repo.DeleteByPattern(ctx, "readiness:*"))
	assert.NoError(t, repo.Close())
}
