package scenario

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/greaheisl/relaybox"
	"github.com/greaheisl/relaybox/buttons"
	"github.com/greaheisl/relaybox/internal/device"
)

var (
	durationType = reflect.TypeOf(relaybox.Duration(0))
	instantType  = reflect.TypeOf(relaybox.Instant(0))
	buttonsType  = reflect.TypeOf(device.ButtonFlags(0))
	clockType    = reflect.TypeOf(device.RTCTime{})
)

// millisHook accepts duration strings such as "750ms" or "2s" for
// durations and instants.
func millisHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != durationType && to != instantType {
		return data, nil
	}
	s, ok := data.(string)
	if !ok {
		return data, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if to == instantType {
		if d < 0 {
			return nil, fmt.Errorf("%w: negative instant %q", ErrInvalid, s)
		}
		return relaybox.FromAbsolute(uint32(d.Milliseconds())), nil
	}
	return relaybox.DurationOf(d), nil
}

// buttonsHook accepts button names, as a list or as a single string.
func buttonsHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != buttonsType {
		return data, nil
	}
	var names []string
	switch v := data.(type) {
	case nil:
		return device.NoButtons, nil
	case string:
		names = []string{v}
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: button name %v is not a string", ErrInvalid, item)
			}
			names = append(names, s)
		}
	default:
		return data, nil
	}
	f, err := device.ParseButtons(names...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return f, nil
}

// clockHook accepts "HH:MM" and "HH:MM:SS".
func clockHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != clockType {
		return data, nil
	}
	s, ok := data.(string)
	if !ok {
		return data, nil
	}
	t, err := device.ParseRTCTime(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return t, nil
}

// Parse decodes and validates a YAML scenario.
func Parse(data []byte) (*Scenario, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalid)
	}

	sc := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.ComposeDecodeHookFunc(millisHook, buttonsHook, clockHook),
		ErrorUnused: true,
		Result:      sc,
	})
	if err != nil {
		return nil, fmt.Errorf("decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// Load reads a scenario from r.
func Load(r io.Reader) (*Scenario, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// LoadFile reads a scenario from a file.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

type readingDoc struct {
	At      uint32   `yaml:"at" json:"at"`
	Buttons []string `yaml:"buttons,flow" json:"buttons"`
}

type document struct {
	Name     string          `yaml:"name" json:"name"`
	Start    uint32          `yaml:"start" json:"start"`
	Until    uint32          `yaml:"until" json:"until"`
	Clock    string          `yaml:"clock" json:"clock"`
	Options  buttons.Options `yaml:"options" json:"options"`
	Settings device.Settings `yaml:"settings" json:"settings"`
	Readings []readingDoc    `yaml:"readings" json:"readings"`
}

func (s *Scenario) document() document {
	doc := document{
		Name:     s.Name,
		Start:    s.Start.Millis(),
		Until:    s.Until.Millis(),
		Clock:    s.Clock.String(),
		Options:  s.Options,
		Settings: s.Settings,
		Readings: make([]readingDoc, len(s.Readings)),
	}
	for i, r := range s.Readings {
		doc.Readings[i] = readingDoc{At: r.At.Millis(), Buttons: r.Buttons.Names()}
	}
	return doc
}

// Marshal encodes s in the YAML form understood by Parse.
func (s *Scenario) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s.document()); err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return buf.Bytes(), nil
}

// Fingerprint identifies the content of a scenario. Scenarios that differ
// only in formatting share a fingerprint.
func (s *Scenario) Fingerprint() string {
	data, err := json.Marshal(s.document())
	if err != nil {
		return "invalid"
	}
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%x", sum[:8])
}
