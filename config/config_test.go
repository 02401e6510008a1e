package config

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/unified-blog-backend/errs"
)

func TestGetters(t *testing.T) {
	env := map[string]string{
		"PORT":             "9090",
		"BAD_INT":          "nine",
		"AUTO_MIGRATE":     "true",
		"EMPTY":            "",
		"ACCEPTED_ORIGINS": "https://a.example, ,https://b.example",
	}

	assert.Equal(t, 9090, GetInt(env, "PORT", 8080))
	assert.Equal(t, 8080, GetInt(env, "BAD_INT", 8080))
	assert.Equal(t, 8080, GetInt(nil, "PORT", 8080))
	assert.True(t, GetBool(env, "AUTO_MIGRATE", false))
	assert.False(t, GetBool(env, "MISSING", false))
	assert.Equal(t, "fallback", GetString(env, "EMPTY", "fallback"))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, GetList(env, "ACCEPTED_ORIGINS"))
	assert.Nil(t, GetList(env, "MISSING"))
}

func TestSplit(t *testing.T) {
	key, value := split("DATABASE_URL=postgres://u:p@h/db?sslmode=require")
	assert.Equal(t, "DATABASE_URL", key)
	assert.Equal(t, "postgres://u:p@h/db?sslmode=require", value)

	key, value = split("NO_VALUE")
	assert.Equal(t, "NO_VALUE", key)
	assert.Empty(t, value)
}

type fakeParameterStore struct {
	pages [][]types.Parameter
	err   error
	calls int
}

func (f *fakeParameterStore) GetParametersByPath(_ context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	page := f.calls
	f.calls++

	out := &ssm.GetParametersByPathOutput{Parameters: f.pages[page]}
	if page+1 < len(f.pages) {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func TestFetchParameters(t *testing.T) {
	store := &fakeParameterStore{pages: [][]types.Parameter{
		{{Name: aws.String("/blog/prod/JWT_SECRET"), Value: aws.String("s3cret")}},
		{{Name: aws.String("/blog/prod/PORT"), Value: aws.String("7000")}},
	}}

	params, err := FetchParameters(context.Background(), store, "/blog/prod")
	require.NoError(t, err)
	assert.Equal(t, 2, store.calls)
	assert.Equal(t, map[string]string{"JWT_SECRET": "s3cret", "PORT": "7000"}, params)

	t.Run("store failure is a config error", func(t *testing.T) {
		_, err := FetchParameters(context.Background(), &fakeParameterStore{err: errors.New("denied")}, "/blog/prod")
		require.Error(t, err)
		assert.True(t, errs.IsConfigError(err))
	})
}

func TestOverlay(t *testing.T) {
	env := map[string]string{"PORT": "8080"}
	params := map[string]string{"PORT": "7000", "JWT_SECRET": "s3cret"}

	merged := Overlay(env, params)
	assert.Equal(t, "8080", merged["PORT"])
	assert.Equal(t, "s3cret", merged["JWT_SECRET"])
}
