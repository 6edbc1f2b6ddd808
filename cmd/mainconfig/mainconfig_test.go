package mainconfig

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	appconfig "github.com/thebar-catering/thebar-site/internal/config"
)

func TestLoadAWSConfigStaticCredentials(t *testing.T) {
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")
	cfg := &appconfig.Config{
		AWSRegion:          "eu-central-1",
		AWSAccessKeyID:     "test",
		AWSSecretAccessKey: "secret",
	}

	awsCfg, err := LoadAWSConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if awsCfg.Region != "eu-central-1" {
		t.Fatalf("expected region eu-central-1, got %s", awsCfg.Region)
	}
	creds, err := awsCfg.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("retrieve credentials: %v", err)
	}
	if creds.AccessKeyID != "test" {
		t.Fatalf("expected static access key, got %s", creds.AccessKeyID)
	}
	if awsCfg.EndpointResolverWithOptions != nil {
		t.Fatalf("expected no endpoint override")
	}
}

func TestLoadAWSConfigEndpointOverride(t *testing.T) {
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")
	cfg := &appconfig.Config{
		AWSRegion:           "eu-central-1",
		AWSAccessKeyID:      "test",
		AWSSecretAccessKey:  "secret",
		AWSEndpointOverride: "http://localhost:4566",
	}

	awsCfg, err := LoadAWSConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, service := range []string{s3.ServiceID, sesv2.ServiceID} {
		endpoint, err := awsCfg.EndpointResolverWithOptions.ResolveEndpoint(service, "eu-central-1")
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", service, err)
		}
		if endpoint.URL != "http://localhost:4566" {
			t.Fatalf("%s: expected override URL, got %s", service, endpoint.URL)
		}
	}
	if _, err := awsCfg.EndpointResolverWithOptions.ResolveEndpoint("DynamoDB", "eu-central-1"); err == nil {
		t.Fatalf("expected other services to use default resolution")
	}
}
