// pkg/schema/validator.go

// Package schema validates cli-inputs documents against CUE definitions
// embedded in the binary, keyed by (service, category, schema name).
package schema

import (
	"context"
	"embed"
	"encoding/json"
	"path"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_err"
	cerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

//go:embed schemas
var schemaFS embed.FS

var (
	// cue.Context is not safe for concurrent use.
	cueMu  sync.Mutex
	cueCtx = cuecontext.New()

	structValidator = validator.New()
)

// CLIInputSchemaValidator checks one kind of cli-inputs document.
type CLIInputSchemaValidator struct {
	service    string
	category   string
	schemaName string
	definition cue.Value
}

// NewCLIInputSchemaValidator loads schemas/<category>/<service>/<schemaName>.cue
// and looks up the #<schemaName> definition.
func NewCLIInputSchemaValidator(service, category, schemaName string) (*CLIInputSchemaValidator, error) {
	file := path.Join("schemas", category, service, schemaName+".cue")
	src, err := schemaFS.ReadFile(file)
	if err != nil {
		return nil, cerr.Wrapf(err, "no schema registered for %s/%s/%s", service, category, schemaName)
	}

	cueMu.Lock()
	defer cueMu.Unlock()

	inst := cueCtx.CompileBytes(src, cue.Filename(file))
	if inst.Err() != nil {
		return nil, cerr.Wrapf(inst.Err(), "compile cue schema %s", file)
	}
	def := inst.LookupPath(cue.ParsePath("#" + schemaName))
	if !def.Exists() {
		return nil, cerr.Newf("schema %s does not define #%s", file, schemaName)
	}

	return &CLIInputSchemaValidator{
		service:    service,
		category:   category,
		schemaName: schemaName,
		definition: def,
	}, nil
}

// SchemaName returns the definition name this validator enforces.
func (v *CLIInputSchemaValidator) SchemaName() string {
	return v.schemaName
}

// ValidateInput checks a JSON document against the definition. Failures are
// marked with scaffold_err.ErrSchemaValidation.
func (v *CLIInputSchemaValidator) ValidateInput(ctx context.Context, data []byte) error {
	logger := otelzap.Ctx(ctx)

	expr, err := cuejson.Extract(v.schemaName+".json", data)
	if err != nil {
		logger.Error("cli-inputs is not valid JSON", zap.String("schema", v.schemaName), zap.Error(err))
		return scaffold_err.WrapValidationError(cerr.Wrap(err, "parse cli inputs"))
	}

	cueMu.Lock()
	input := cueCtx.BuildExpr(expr)
	err = input.Err()
	if err == nil {
		err = v.definition.Unify(input).Validate(cue.Concrete(true))
	}
	cueMu.Unlock()

	if err != nil {
		logger.Error("CUE validation failed",
			zap.String("service", v.service),
			zap.String("category", v.category),
			zap.String("schema", v.schemaName),
			zap.Error(err))
		return scaffold_err.WrapValidationError(cerr.Wrapf(err, "%s does not satisfy #%s", v.category+"/"+v.service, v.schemaName))
	}

	logger.Debug("CUE validation passed", zap.String("schema", v.schemaName))
	return nil
}

// ValidateStruct runs the struct-tag checks and then the CUE definition over
// the JSON encoding of in.
func (v *CLIInputSchemaValidator) ValidateStruct(ctx context.Context, in interface{}) error {
	if err := Struct(in); err != nil {
		otelzap.Ctx(ctx).Error("Struct validation failed", zap.String("schema", v.schemaName), zap.Error(err))
		return scaffold_err.WrapValidationError(err)
	}
	data, err := json.Marshal(in)
	if err != nil {
		return cerr.Wrap(err, "encode cli inputs")
	}
	return v.ValidateInput(ctx, data)
}

// Struct validates a Go struct with `validate:` tags (playground/validator).
func Struct(in interface{}) error {
	return structValidator.Struct(in)
}
