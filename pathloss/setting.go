package pathloss

import (
	"fmt"
	"reflect"

	ms "github.com/mitchellh/mapstructure"
)

// ModelSetting is everything needed for one calculation or sweep
type ModelSetting struct {
	Parameters `mapstructure:",squash"`

	Type    ModelType `mapstructure:"model"`
	StartKm float64   `mapstructure:"start"`
	EndKm   float64   `mapstructure:"end"`
	Samples int       `mapstructure:"samples"`
}

func NewModelSetting() *ModelSetting {
	result := new(ModelSetting)
	result.SetDefault()
	return result
}

func (m *ModelSetting) SetDefault() {
	m.Type = Hata
	m.Area = Urban
	m.Samples = DefaultSamples
}

// Evaluate computes the scalar path loss at m.DistanceKm
func (m ModelSetting) Evaluate() (Result, error) {
	return Evaluate(m.Type, m.Parameters)
}

// Sweep evaluates the model over [m.StartKm, m.EndKm]
func (m ModelSetting) Sweep() (SweepResult, error) {
	return Sweep(m.Type, m.Parameters, m.StartKm, m.EndKm, m.Samples)
}

// DecodeSetting builds a ModelSetting from loosely typed input such as a
// parsed config file. Numbers may be given as strings; enums by name.
// Keys not present keep their default value and unknown keys are ignored
func DecodeSetting(input map[string]interface{}) (ModelSetting, error) {
	result := NewModelSetting()
	dec, err := ms.NewDecoder(&ms.DecoderConfig{
		DecodeHook:       enumHook,
		WeaklyTypedInput: true,
		Result:           result,
	})
	if err != nil {
		return ModelSetting{}, err
	}
	if err := dec.Decode(input); err != nil {
		return ModelSetting{}, fmt.Errorf("decoding setting: %v: %w", err, ErrInvalidParameter)
	}
	return *result, nil
}

var (
	areaKind  = reflect.TypeOf(AreaType(0))
	modelKind = reflect.TypeOf(ModelType(0))
)

func enumHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	switch to {
	case areaKind:
		return ParseAreaType(data.(string))
	case modelKind:
		return ParseModelType(data.(string))
	}
	return data, nil
}
