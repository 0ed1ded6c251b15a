package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"recipe-recommender/internal/core/domain"
	"recipe-recommender/internal/infrastructure/monitoring"
	"recipe-recommender/internal/pkg/common"
)

const candidateKeyPrefix = "recipes:candidates:"

// RecipeStore 快取候選食譜清單的 domain.RecipeStore 包裝
//
// 查詢條件不含使用者識別資料，相同飲食條件的使用者可共用結果。
// 快取錯誤只記錄，不影響讀取。
type RecipeStore struct {
	inner   domain.RecipeStore
	store   Store
	backend string
}

// NewRecipeStore 建立快取包裝
func NewRecipeStore(inner domain.RecipeStore, store Store, backend string) *RecipeStore {
	return &RecipeStore{inner: inner, store: store, backend: backend}
}

// FetchCandidates 先查快取，未命中再查資料庫並寫回
func (s *RecipeStore) FetchCandidates(ctx context.Context, query domain.CandidateQuery) ([]domain.Recipe, error) {
	key, err := candidateKey(query)
	if err != nil {
		return s.inner.FetchCandidates(ctx, query)
	}

	if data, err := s.store.Get(ctx, key); err == nil {
		var recipes []domain.Recipe
		if err := common.ParseJSONBytesStrict(data, &recipes); err == nil {
			common.LogCacheHit(s.backend, key)
			monitoring.RecordCacheResult(s.backend, true)
			return recipes, nil
		}
		common.LogWarn("Discarding unreadable cache entry", zap.String("key", key))
	} else if !errors.Is(err, ErrMiss) {
		common.LogWarn("Cache lookup failed", zap.String("key", key), zap.Error(err))
	}
	common.LogCacheMiss(s.backend, key)
	monitoring.RecordCacheResult(s.backend, false)

	recipes, err := s.inner.FetchCandidates(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return recipes, nil
	}

	data, err := common.ToJSON(recipes)
	if err == nil {
		err = s.store.Set(ctx, key, []byte(data))
	}
	if err != nil {
		common.LogWarn("Failed to cache candidates", zap.String("key", key), zap.Error(err))
	}
	return recipes, nil
}

// GetRecipe 單筆讀取不經快取
func (s *RecipeStore) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	return s.inner.GetRecipe(ctx, id)
}

// candidateKey 以查詢條件 JSON 的 SHA-256 作為鍵
func candidateKey(query domain.CandidateQuery) (string, error) {
	data, err := common.ToJSON(query)
	if err != nil {
		return "", fmt.Errorf("failed to encode candidate query: %w", err)
	}
	hash := sha256.Sum256([]byte(data))
	return candidateKeyPrefix + hex.EncodeToString(hash[:]), nil
}
