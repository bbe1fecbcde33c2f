// Package pathmanager derives every project document location from the
// project root so no other package builds paths by hand.
package pathmanager

import (
	"path/filepath"

	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/shared"
	cerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// PathManager resolves paths below <root>/amplify.
type PathManager struct {
	projectRoot string
}

// New returns a PathManager rooted at projectRoot (made absolute).
func New(projectRoot string) (*PathManager, error) {
	if projectRoot == "" {
		projectRoot = "."
	}
	abs, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, cerr.Wrapf(err, "resolve project root %q", projectRoot)
	}
	return &PathManager{projectRoot: abs}, nil
}

// ValidateResourceName rejects names that could escape the resource directory.
func ValidateResourceName(name string) error {
	if err := validate.Var(name, "required,alphanum,max=128"); err != nil {
		return cerr.WithHint(
			cerr.Wrapf(err, "invalid resource name %q", name),
			"resource names are alphanumeric, for example: photos01",
		)
	}
	return nil
}

func (p *PathManager) ProjectRoot() string {
	return p.projectRoot
}

func (p *PathManager) AmplifyDirPath() string {
	return filepath.Join(p.projectRoot, shared.ProjectRoot)
}

func (p *PathManager) BackendDirPath() string {
	return filepath.Join(p.AmplifyDirPath(), shared.BackendDirName)
}

func (p *PathManager) DotConfigDirPath() string {
	return filepath.Join(p.AmplifyDirPath(), shared.DotConfigDirName)
}

// ResourceDirPath is <backend>/<category>/<resource>.
func (p *PathManager) ResourceDirPath(category, resourceName string) string {
	return filepath.Join(p.BackendDirPath(), category, resourceName)
}

func (p *PathManager) ResourceBuildDirPath(category, resourceName string) string {
	return filepath.Join(p.ResourceDirPath(category, resourceName), shared.BuildDirName)
}

func (p *PathManager) CliInputsFilePath(category, resourceName string) string {
	return filepath.Join(p.ResourceDirPath(category, resourceName), shared.CliInputsFileName)
}

func (p *PathManager) ParametersFilePath(category, resourceName string) string {
	return filepath.Join(p.ResourceDirPath(category, resourceName), shared.ParametersFileName)
}

// CfnTemplateFilePath is the generated template, named after the service:
// S3 -> S3-cloudformation-template.json.
func (p *PathManager) CfnTemplateFilePath(category, resourceName, service string) string {
	return filepath.Join(p.ResourceDirPath(category, resourceName), service+shared.CfnTemplateFileSuffix)
}

func (p *PathManager) StorageParamsFilePath(category, resourceName string) string {
	return filepath.Join(p.ResourceDirPath(category, resourceName), shared.StorageParamsFileName)
}

func (p *PathManager) TeamProviderInfoFilePath() string {
	return filepath.Join(p.AmplifyDirPath(), shared.TeamProviderInfoFile)
}

func (p *PathManager) LocalEnvInfoFilePath() string {
	return filepath.Join(p.DotConfigDirPath(), shared.LocalEnvInfoFileName)
}
