package builder

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/expr-lang/expr"
	"github.com/pelletier/go-toml/v2"
)

const ConfigFile = "vsgen.toml"

type Config struct {
	Project   ProjectSection           `toml:"project"`
	Generator GeneratorSection         `toml:"generator"`
	System    SystemSection            `toml:"system"`
	Android   AndroidSection           `toml:"android"`
	Targets   map[string]TargetSection `toml:"targets"`
}

// TargetNames returns the utility target names in sorted order.
func (c Config) TargetNames() []string {
	names := make([]string, 0, len(c.Targets))
	for k := range c.Targets {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// ProjectSection defines the [project] section
type ProjectSection struct {
	Name           string   `toml:"name"`
	Configurations []string `toml:"configurations"`
	BuildDir       string   `toml:"build-dir"`
}

// GeneratorSection defines the [generator] section
type GeneratorSection struct {
	Name     string `toml:"name"`
	Instance string `toml:"instance"`
	Platform string `toml:"platform"`
	Toolset  string `toml:"toolset"`
}

// SystemSection defines the [system] section
type SystemSection struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// AndroidSection defines the [android] section
type AndroidSection struct {
	// APILevel is written either as 21 or "21".
	APILevel any `toml:"api-level"`
}

func (s AndroidSection) APILevelString() string {
	switch v := s.APILevel.(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	}
	return fmt.Sprint(s.APILevel)
}

// TargetSection defines a [targets.*] section
type TargetSection struct {
	Commands []string `toml:"commands"`
}

// mergeStructs merges the fields of the src struct into the dst struct
func mergeStructs(dst, src any) error {
	dstVal := reflect.ValueOf(dst)
	if dstVal.Kind() != reflect.Pointer || dstVal.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("dst must be a pointer to a struct")
	}

	dstElem := dstVal.Elem()
	srcVal := reflect.ValueOf(src)

	if srcVal.Kind() == reflect.Pointer {
		srcVal = srcVal.Elem()
	}

	if srcVal.Kind() != reflect.Struct {
		return fmt.Errorf("src must be a struct or a pointer to a struct")
	}

	if dstElem.Type() != srcVal.Type() {
		return fmt.Errorf("dst and src must be of the same struct type")
	}

	for i := range srcVal.NumField() {
		srcField := srcVal.Field(i)
		dstField := dstElem.Field(i)

		if !dstField.CanSet() {
			continue
		}

		switch dstField.Kind() {
		case reflect.Slice:
			if !srcField.IsNil() {
				dstField.Set(reflect.AppendSlice(dstField, srcField))
			}
		case reflect.Map:
			if !srcField.IsNil() {
				if dstField.IsNil() {
					dstField.Set(reflect.MakeMap(dstField.Type()))
				}
				for _, key := range srcField.MapKeys() {
					dstField.SetMapIndex(key, srcField.MapIndex(key))
				}
			}
		case reflect.Bool:
			dstField.SetBool(dstField.Bool() || srcField.Bool())
		default:
			if !srcField.IsZero() {
				dstField.Set(srcField)
			}
		}
	}

	return nil
}

func mustMarshal(v any) string {
	b, err := toml.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}

// unmarshalSection is a helper to parse sections without conditional logic
func unmarshalSection(rawCfg map[string]any, name string, dst any) error {
	if data, ok := rawCfg[name]; ok {
		if err := toml.Unmarshal([]byte(mustMarshal(data)), dst); err != nil {
			return errors.Wrapf(err, "failed to parse [%s] section", name)
		}
	}
	return nil
}

// unmarshalConditionalSection is a helper to parse, evaluate and merge multiple sections with conditional logic
func unmarshalConditionalSection[T any](rawCfg map[string]any, name string, dst *T, env ConfigEnv) error {
	sectionData, ok := rawCfg[name]
	if !ok {
		return nil
	}

	sectionMap, ok := sectionData.(map[string]any)
	if !ok {
		return errors.Newf("invalid [%s] section format: expected a table", name)
	}

	baseFields := make(map[string]any)
	conditionalFields := make(map[string]map[string]any)

	for key, val := range sectionMap {
		if subMap, ok := val.(map[string]any); ok {
			_, err := expr.Compile(key, expr.Env(env))
			if err == nil {
				conditionalFields[key] = subMap
			} else {
				baseFields[key] = val
			}
		} else {
			baseFields[key] = val
		}
	}

	if len(baseFields) > 0 {
		if err := toml.Unmarshal([]byte(mustMarshal(baseFields)), dst); err != nil {
			return errors.Wrapf(err, "failed to parse base [%s] section", name)
		}
	}

	// stable order so later matching sections win predictably
	expressions := make([]string, 0, len(conditionalFields))
	for expression := range conditionalFields {
		expressions = append(expressions, expression)
	}
	slices.Sort(expressions)

	for _, expression := range expressions {
		program, err := expr.Compile(expression, expr.Env(env))
		if err != nil {
			return errors.Wrapf(err, "failed to compile expression for [%s.%q]", name, expression)
		}

		result, err := expr.Run(program, env)
		if err != nil {
			return errors.Wrapf(err, "failed to run expression for [%s.%q]", name, expression)
		}

		// merge sections if the result is true
		if matched, ok := result.(bool); !ok || !matched {
			continue
		}

		var condSection T
		if err := toml.Unmarshal([]byte(mustMarshal(conditionalFields[expression])), &condSection); err != nil {
			return errors.Wrapf(err, "failed to parse conditional section [%s.%q]", name, expression)
		}
		if err := mergeStructs(dst, condSection); err != nil {
			return errors.Wrapf(err, "failed to merge conditional section [%s.%q]", name, expression)
		}
	}

	return nil
}

var exprRegex = regexp.MustCompile(`\{\{(.+?)\}\}`)

// evaluateString finds and evaluates all {{...}} expressions in a string
func evaluateString(s string, env ConfigEnv) (string, error) {
	matches := exprRegex.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, nil
	}

	var builder strings.Builder
	lastIndex := 0

	for _, matchIndexes := range matches {
		fullMatchStart := matchIndexes[0]
		fullMatchEnd := matchIndexes[1]
		expressionStart := matchIndexes[2]
		expressionEnd := matchIndexes[3]

		builder.WriteString(s[lastIndex:fullMatchStart])

		expression := strings.TrimSpace(s[expressionStart:expressionEnd])
		program, err := expr.Compile(expression, expr.Env(env))
		if err != nil {
			return "", errors.Wrapf(err, "failed to compile expression %q", expression)
		}

		result, err := expr.Run(program, env)
		if err != nil {
			return "", errors.Wrapf(err, "failed to run expression %q", expression)
		}

		builder.WriteString(fmt.Sprintf("%v", result))
		lastIndex = fullMatchEnd
	}

	builder.WriteString(s[lastIndex:])

	return builder.String(), nil
}

// processExpressions recursively walks the parsed TOML data and evaluates expressions in strings
func processExpressions(data any, env ConfigEnv) (any, error) {
	switch v := data.(type) {
	case map[string]any:
		for key, val := range v {
			processedVal, err := processExpressions(val, env)
			if err != nil {
				return nil, err
			}
			v[key] = processedVal
		}
		return v, nil
	case []any:
		for i, item := range v {
			processedItem, err := processExpressions(item, env)
			if err != nil {
				return nil, err
			}
			v[i] = processedItem
		}
		return v, nil
	case string:
		return evaluateString(v, env)
	default:
		return data, nil
	}
}

func ParseConfig(rdr io.Reader, env ConfigEnv) (*Config, error) {
	var rawConfig map[string]any
	dec := toml.NewDecoder(rdr)
	if err := dec.Decode(&rawConfig); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			return nil, errors.New(derr.String())
		}
		return nil, err
	}
	if rawConfig == nil {
		rawConfig = make(map[string]any)
	}

	processedConfig, err := processExpressions(rawConfig, env)
	if err != nil {
		return nil, errors.Wrap(err, "error processing expressions in config")
	}
	rawConfig = processedConfig.(map[string]any)

	cfg := new(Config)

	if err := unmarshalSection(rawConfig, "project", &cfg.Project); err != nil {
		return nil, err
	}
	if err := unmarshalConditionalSection(rawConfig, "generator", &cfg.Generator, env); err != nil {
		return nil, err
	}
	if err := unmarshalConditionalSection(rawConfig, "system", &cfg.System, env); err != nil {
		return nil, err
	}
	if err := unmarshalConditionalSection(rawConfig, "android", &cfg.Android, env); err != nil {
		return nil, err
	}
	if err := unmarshalSection(rawConfig, "targets", &cfg.Targets); err != nil {
		return nil, err
	}

	if cfg.Project.Name == "" {
		cfg.Project.Name = filepath.Base(env.basedir)
	}
	if cfg.Project.BuildDir == "" {
		cfg.Project.BuildDir = "build"
	}

	return cfg, nil
}

// ParseConfigFromFile parses and validates a config file from a filepath
func ParseConfigFromFile(path string, env ConfigEnv) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseConfig(bufio.NewReader(f), env)
}

//
// expr-lang helpers
//

type ConfigEnv struct {
	HostOS   string            `expr:"host_os"`
	HostArch string            `expr:"host_arch"`
	Environ  map[string]string `expr:"environ"`
	basedir  string
}

func NewConfigEnv(basedir string) ConfigEnv {
	environ := make(map[string]string)
	for _, e := range os.Environ() {
		if i := strings.Index(e, "="); i >= 0 {
			environ[e[:i]] = e[i+1:]
		}
	}

	return ConfigEnv{
		HostOS:   runtime.GOOS,
		HostArch: runtime.GOARCH,
		Environ:  environ,
		basedir:  basedir,
	}
}

// Exists reports whether path, relative to the project directory, exists.
func (env ConfigEnv) Exists(path string) bool {
	_, err := os.Stat(filepath.Join(env.basedir, path))
	return err == nil
}

// ReadFile returns the trimmed contents of a file in the project directory.
func (env ConfigEnv) ReadFile(path string) (string, error) {
	fullPath := filepath.Join(env.basedir, path)
	rel, err := filepath.Rel(env.basedir, fullPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", errors.Newf("path %q is outside of project directory %q", path, env.basedir)
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(data)), nil
}
