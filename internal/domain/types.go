package domain

// ResourceType is a CloudFormation resource type discriminator
type ResourceType string

const (
	ResourceTypeRole                ResourceType = "AWS::IAM::Role"
	ResourceTypeUser                ResourceType = "AWS::IAM::User"
	ResourceTypeGroup               ResourceType = "AWS::IAM::Group"
	ResourceTypePolicy              ResourceType = "AWS::IAM::Policy"
	ResourceTypeManagedPolicy       ResourceType = "AWS::IAM::ManagedPolicy"
	ResourceTypeInstanceProfile     ResourceType = "AWS::IAM::InstanceProfile"
	ResourceTypeUserToGroupAddition ResourceType = "AWS::IAM::UserToGroupAddition"
)

// OutputFormat is the serialization used for rendered templates
type OutputFormat string

const (
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// LogLevel represents log levels
type LogLevel string

const (
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
)
