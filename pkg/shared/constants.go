// pkg/shared/constants.go

package shared

const (
	AppID       = "scaffold"
	AppLogFile  = "scaffold.log"
	EnvPrefix   = "SCAFFOLD"
	DotEnvFile  = ".env"
	ProjectRoot = "amplify"
)

// Version is overridden at link time.
var Version = "dev"

const (
	// Permission modes (in octal)
	DirPermStandard        = 0755
	FilePermStandard       = 0644
	FilePermOwnerReadWrite = 0600
)

// Categories and services known to the path manager.
const (
	CategoryStorage = "storage"
	ServiceS3       = "S3"
)

// Project document names.
const (
	BackendDirName         = "backend"
	DotConfigDirName       = ".config"
	CliInputsFileName      = "cli-inputs.json"
	ParametersFileName     = "parameters.json"
	StorageParamsFileName  = "storage-params.json"
	CfnTemplateFileSuffix  = "-cloudformation-template.json"
	TeamProviderInfoFile   = "team-provider-info.json"
	LocalEnvInfoFileName   = "local-env-info.json"
	BuildDirName           = "build"
	ProviderCloudFormation = "awscloudformation"
)
