package machine

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"
	"time"

	"github.com/JebManMan/MeBot/common"
	"github.com/JebManMan/MeBot/common/adaptorapi"
	"github.com/JebManMan/MeBot/common/behaviorapi"
	"github.com/JebManMan/MeBot/pkg/adaptors"
	"github.com/JebManMan/MeBot/pkg/behaviors"
	"github.com/JebManMan/MeBot/pkg/drivers"

	multierror "github.com/hashicorp/go-multierror"
	yaml "gopkg.in/yaml.v2"
)

// Conf describes one robot: the adaptor it talks through, how its two
// motors are wired and which modes it can run.
type Conf struct {
	MachineID    string                             `json:"machine-id"`
	TickInterval int                                `json:"tick-interval"` // milliseconds
	Adaptor      adaptorapi.AdaptorConfEnvelope     `json:"adaptor"`
	LeftMotor    drivers.MotorConf                  `json:"left-motor"`
	RightMotor   drivers.MotorConf                  `json:"right-motor"`
	Modes        []behaviorapi.BehaviorConfEnvelope `json:"modes"`
	InitialMode  int                                `json:"initial-mode"`
	StatusLEDPin string                             `json:"status-led-pin,omitempty"`
}

// LoadConf reads a machine conf from a .json, .yaml or .yml file.
func LoadConf(path string) (*Conf, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

func ParseJSON(data []byte) (*Conf, error) {
	var c Conf
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshal of machine conf failed: %s", err)
	}
	return &c, nil
}

// ParseYAML decodes YAML by way of JSON, so nested adaptor and behavior
// confs end up as the same map[string]interface{} values in both formats.
func ParseYAML(data []byte) (*Conf, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal of machine conf failed: %s", err)
	}
	bytes, err := json.Marshal(jsonCompatible(raw))
	if err != nil {
		return nil, fmt.Errorf("marshal of machine conf (into json) failed: %s", err)
	}
	return ParseJSON(bytes)
}

// jsonCompatible converts the map[interface{}]interface{} values produced by
// yaml.v2 into map[string]interface{}.
func jsonCompatible(v interface{}) interface{} {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			m[fmt.Sprintf("%v", k)] = jsonCompatible(val)
		}
		return m
	case []interface{}:
		for i, val := range t {
			t[i] = jsonCompatible(val)
		}
		return t
	default:
		return v
	}
}

func (c *Conf) Interval() time.Duration {
	ms := c.TickInterval
	if ms <= 0 {
		ms = common.DefaultTickInterval
	}
	return time.Duration(ms) * time.Millisecond
}

// Validate reports every problem found in the conf, not just the first.
func (c *Conf) Validate() error {
	var result error
	if c.MachineID == "" {
		result = multierror.Append(result, fmt.Errorf("no machine-id specified"))
	}
	if c.TickInterval < 0 {
		result = multierror.Append(result, fmt.Errorf("tick-interval must not be negative, got %d", c.TickInterval))
	}
	if _, err := c.AdaptorConf(); err != nil {
		result = multierror.Append(result, fmt.Errorf("adaptor: %s", err))
	}
	if err := c.LeftMotor.ValidateConf(); err != nil {
		result = multierror.Append(result, fmt.Errorf("left-motor: %s", err))
	}
	if err := c.RightMotor.ValidateConf(); err != nil {
		result = multierror.Append(result, fmt.Errorf("right-motor: %s", err))
	}
	left := []string{c.LeftMotor.ForwardPin, c.LeftMotor.ReversePin}
	right := []string{c.RightMotor.ForwardPin, c.RightMotor.ReversePin}
	for _, pin := range right {
		if pin != "" && (pin == left[0] || pin == left[1]) {
			result = multierror.Append(result, fmt.Errorf("pin %s is used by both motors", pin))
		}
	}
	if c.StatusLEDPin != "" {
		for _, pin := range append(left, right...) {
			if pin == c.StatusLEDPin {
				result = multierror.Append(result, fmt.Errorf("status-led-pin %s is also a motor pin", pin))
				break
			}
		}
	}
	if len(c.Modes) == 0 {
		result = multierror.Append(result, fmt.Errorf("no modes specified"))
	}
	if _, err := c.BehaviorConfs(); err != nil {
		result = multierror.Append(result, err)
	}
	return result
}

func (c *Conf) AdaptorConf() (adaptorapi.AdaptorConf, error) {
	return adaptors.NewAdaptorConfFromEnvelope(c.MachineID, c.Adaptor)
}

func (c *Conf) BehaviorConfs() ([]behaviorapi.BehaviorConf, error) {
	return behaviors.NewBehaviorConfs(behaviorapi.BehaviorsConfEnvelope{
		MachineID: c.MachineID,
		Confs:     c.Modes,
	})
}
