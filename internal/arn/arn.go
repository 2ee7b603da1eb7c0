package arn

import (
	"fmt"

	awsarn "github.com/aws/aws-sdk-go-v2/aws/arn"
)

const (
	// PartitionAWS is the commercial AWS partition
	PartitionAWS = "aws"
	// ServiceIAM is the service segment used for every IAM entity ARN
	ServiceIAM = "iam"
	// AccountRoot is the resource that names a whole account
	AccountRoot = "root"
)

// Components holds the segments of a parsed ARN
type Components struct {
	Partition string
	Service   string
	Region    string
	AccountID string
	Resource  string
}

// Generate formats an ARN from its segments.
// Empty segments are kept, so a blank region and account yield "arn:aws:iam:::user/Dave".
func Generate(partition, service, region, accountID, resource string) string {
	return fmt.Sprintf("arn:%s:%s:%s:%s:%s", partition, service, region, accountID, resource)
}

// GenerateAccount builds an IAM ARN for a resource inside an account.
// An empty resource names the account root.
func GenerateAccount(accountID, resource string) string {
	if resource == "" {
		resource = AccountRoot
	}
	return Generate(PartitionAWS, ServiceIAM, "", accountID, resource)
}

// IAMResource builds the ARN of an IAM entity such as "role/Name" in the aws partition
func IAMResource(region, accountID, resource string) string {
	return Generate(PartitionAWS, ServiceIAM, region, accountID, resource)
}

// IsARN reports whether s looks like an ARN
func IsARN(s string) bool {
	return awsarn.IsARN(s)
}

// Parse splits an ARN into its segments
func Parse(s string) (Components, error) {
	parsed, err := awsarn.Parse(s)
	if err != nil {
		return Components{}, fmt.Errorf("failed to parse ARN %q: %w", s, err)
	}
	return Components{
		Partition: parsed.Partition,
		Service:   parsed.Service,
		Region:    parsed.Region,
		AccountID: parsed.AccountID,
		Resource:  parsed.Resource,
	}, nil
}
