package config

import (
	"context"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/unified-blog-backend/errs"
)

// Load reads .env (when present) into the process environment and returns the
// resulting env map. When SSM_PARAMETER_PATH is set, the parameters stored
// under that path are merged in below the real environment.
func Load(ctx context.Context) (map[string]string, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("No .env file loaded")
	}

	env := New()
	parameterPath := GetString(env, "SSM_PARAMETER_PATH", "")
	if parameterPath == "" {
		return env, nil
	}

	awsCfg, err := AWS(ctx, env)
	if err != nil {
		return nil, err
	}

	params, err := FetchParameters(ctx, ssm.NewFromConfig(awsCfg), parameterPath)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", parameterPath).Int("count", len(params)).Msg("Loaded parameters from SSM")

	return Overlay(env, params), nil
}

// AWS builds the shared AWS configuration. Static credentials from
// AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY take precedence over the
// default credential chain.
func AWS(ctx context.Context, env map[string]string) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(GetString(env, "AWS_REGION", "us-east-1")),
	}

	accessKey := GetString(env, "AWS_ACCESS_KEY_ID", "")
	secretKey := GetString(env, "AWS_SECRET_ACCESS_KEY", "")
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, GetString(env, "AWS_SESSION_TOKEN", "")),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, errs.NewConfigError("aws", err)
	}
	return cfg, nil
}

// FetchParameters reads every parameter below parameterPath, keyed by the
// last segment of its name.
func FetchParameters(ctx context.Context, client ssm.GetParametersByPathAPIClient, parameterPath string) (map[string]string, error) {
	params := make(map[string]string)
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(parameterPath),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errs.NewConfigError("ssm parameters", err)
		}
		for _, p := range page.Parameters {
			name := aws.ToString(p.Name)
			if name == "" {
				continue
			}
			params[path.Base(name)] = aws.ToString(p.Value)
		}
	}
	return params, nil
}

// Overlay returns env with params added for keys env does not already hold.
func Overlay(env, params map[string]string) map[string]string {
	merged := make(map[string]string, len(env)+len(params))
	for key, value := range params {
		merged[key] = value
	}
	for key, value := range env {
		merged[key] = value
	}
	return merged
}
