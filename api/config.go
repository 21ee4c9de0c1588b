package api

import (
	"sort"
	"strings"
	"sync"
)

// CfgType identifies a configuration variable's value type.
type CfgType int

const (
	CfgTypeBool CfgType = iota
	CfgTypeUlint
	CfgTypeText
)

// CfgFlag restricts when a configuration variable may change.
type CfgFlag uint8

const (
	CfgFlagNone CfgFlag = 1 << iota
	CfgFlagReadOnlyAfterStartup
	CfgFlagReadOnly
)

// ConfigVar represents a configuration variable.
type ConfigVar struct {
	Name     string
	Type     CfgType
	Flag     CfgFlag
	MinValue uint64
	MaxValue uint64
	Value    any
}

var (
	cfgMu   sync.RWMutex
	cfgVars map[string]*ConfigVar
)

// CfgInit initializes the configuration registry.
func CfgInit() ErrCode {
	cfgMu.Lock()
	defer cfgMu.Unlock()
	cfgVars = map[string]*ConfigVar{}
	registerDefaults()
	return AL_SUCCESS
}

// CfgShutdown clears the configuration registry.
func CfgShutdown() ErrCode {
	cfgMu.Lock()
	defer cfgMu.Unlock()
	cfgVars = nil
	return AL_SUCCESS
}

// CfgVarGetType returns the type for a configuration variable.
func CfgVarGetType(name string) (CfgType, ErrCode) {
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	cfgVar := cfgVars[keyName(name)]
	if cfgVar == nil {
		return 0, AL_NOT_FOUND
	}
	return cfgVar.Type, AL_SUCCESS
}

// CfgSet updates a configuration variable.
func CfgSet(name string, value any) ErrCode {
	cfgMu.Lock()
	defer cfgMu.Unlock()
	cfgVar := cfgVars[keyName(name)]
	if cfgVar == nil {
		return AL_NOT_FOUND
	}
	if cfgVar.Flag&CfgFlagReadOnly != 0 {
		return AL_READONLY
	}
	if IsInited() && cfgVar.Flag&CfgFlagReadOnlyAfterStartup != 0 {
		return AL_READONLY
	}
	assigned, err := assignConfigValue(cfgVar, value)
	if err != AL_SUCCESS {
		return err
	}
	cfgVar.Value = assigned
	return AL_SUCCESS
}

// CfgGet retrieves a configuration variable into the provided pointer.
func CfgGet(name string, out any) ErrCode {
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	cfgVar := cfgVars[keyName(name)]
	if cfgVar == nil {
		return AL_NOT_FOUND
	}
	return assignConfigOut(cfgVar, out)
}

// CfgGetAll returns all config variable names.
func CfgGetAll() ([]string, ErrCode) {
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	names := make([]string, 0, len(cfgVars))
	for _, cfgVar := range cfgVars {
		names = append(names, cfgVar.Name)
	}
	sort.Strings(names)
	return names, AL_SUCCESS
}

func registerDefaults() {
	registerVar(&ConfigVar{
		Name:  "use_fast_allocator",
		Type:  CfgTypeBool,
		Flag:  CfgFlagReadOnlyAfterStartup,
		Value: true,
	})
	registerVar(&ConfigVar{
		Name:     "fast_alloc_max_cached",
		Type:     CfgTypeUlint,
		Flag:     CfgFlagReadOnlyAfterStartup,
		MinValue: 1 << 6,
		MaxValue: 1 << 30,
		Value:    uint64(1 << 20),
	})
	registerVar(&ConfigVar{
		Name:     "large_alloc_warn_bytes",
		Type:     CfgTypeUlint,
		Flag:     CfgFlagNone,
		MinValue: 0,
		MaxValue: 1 << 62,
		Value:    uint64(1 << 30),
	})
	registerVar(&ConfigVar{
		Name:  "alignment",
		Type:  CfgTypeUlint,
		Flag:  CfgFlagReadOnly,
		Value: uint64(64),
	})
	registerVar(&ConfigVar{
		Name:  "version",
		Type:  CfgTypeText,
		Flag:  CfgFlagReadOnly,
		Value: "go-port",
	})
}

func registerVar(cfgVar *ConfigVar) {
	if cfgVars == nil {
		cfgVars = map[string]*ConfigVar{}
	}
	cfgVars[keyName(cfgVar.Name)] = cfgVar
}

func keyName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func assignConfigValue(cfgVar *ConfigVar, value any) (any, ErrCode) {
	switch cfgVar.Type {
	case CfgTypeBool:
		b, ok := value.(bool)
		if !ok {
			return nil, AL_INVALID_INPUT
		}
		return b, AL_SUCCESS
	case CfgTypeUlint:
		u, ok := toUint64(value)
		if !ok {
			return nil, AL_INVALID_INPUT
		}
		if !inRange(u, cfgVar.MinValue, cfgVar.MaxValue) {
			return nil, AL_INVALID_INPUT
		}
		return u, AL_SUCCESS
	case CfgTypeText:
		s, ok := value.(string)
		if !ok {
			return nil, AL_INVALID_INPUT
		}
		return s, AL_SUCCESS
	default:
		return nil, AL_ERROR
	}
}

func assignConfigOut(cfgVar *ConfigVar, out any) ErrCode {
	switch cfgVar.Type {
	case CfgTypeBool:
		ptr, ok := out.(*bool)
		if !ok {
			return AL_INVALID_INPUT
		}
		*ptr = cfgVar.Value.(bool)
	case CfgTypeUlint:
		ptr, ok := out.(*uint64)
		if !ok {
			return AL_INVALID_INPUT
		}
		*ptr = cfgVar.Value.(uint64)
	case CfgTypeText:
		ptr, ok := out.(*string)
		if !ok {
			return AL_INVALID_INPUT
		}
		*ptr = cfgVar.Value.(string)
	default:
		return AL_ERROR
	}
	return AL_SUCCESS
}

func toUint64(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

func inRange(v, min, max uint64) bool {
	if min == 0 && max == 0 {
		return true
	}
	return v >= min && v <= max
}
