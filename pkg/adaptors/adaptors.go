package adaptors

import (
	"encoding/json"
	"fmt"

	"github.com/JebManMan/MeBot/common/adaptorapi"
	"github.com/JebManMan/MeBot/common/types"

	logging "github.com/op/go-logging"
)

var (
	logger = logging.MustGetLogger("mebot-adaptors")
)

// List of all adaptors
const (
	Adaptor_UnitTest       = "adaptor_unittest"
	Adaptor_Firmata_Serial = "adaptor_firmata_serial"
	Adaptor_Raspi          = "adaptor_raspi"
)

// NewAdaptorConf is a util method used to get adaptor conf of a particular type.
// The idea is to localize new adaptor creation code to this package, so that
// each time a new adaptor is added, the below code can be updated.
func NewAdaptorConf(adaptorType, adaptorID, machineID string) (adaptorapi.AdaptorConf, error) {
	switch adaptorType {
	case Adaptor_UnitTest:
		return &UnitTestConf{
			MachineID:   machineID,
			AdaptorType: adaptorType,
			ID:          adaptorID,
		}, nil
	case Adaptor_Firmata_Serial:
		return &FirmataSerialConf{
			MachineID:   machineID,
			AdaptorType: adaptorType,
			ID:          adaptorID,
		}, nil
	case Adaptor_Raspi:
		return &RaspiConf{
			MachineID:   machineID,
			AdaptorType: adaptorType,
			ID:          adaptorID,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownAdaptorType, adaptorType)
	}
}

// NewAdaptorConfFromEnvelope decodes the type specific conf carried in env.
func NewAdaptorConfFromEnvelope(machineID string, env adaptorapi.AdaptorConfEnvelope) (adaptorapi.AdaptorConf, error) {
	aConf, err := NewAdaptorConf(env.Type, env.ID, machineID)
	if err != nil {
		return nil, err
	}
	if env.Conf != nil {
		// Conf is a map[string]interface{} at this point. In order to
		// unmarshal into the typed conf, we have to put it back into json.
		bytes, err := json.Marshal(env.Conf)
		if err != nil {
			return nil, fmt.Errorf("marshal of adaptor conf %s failed: %s", env.ID, err)
		}
		if err := json.Unmarshal(bytes, aConf); err != nil {
			return nil, fmt.Errorf("unmarshal of %s failed: %s", env.Type, err)
		}
	}
	if err := aConf.ValidateConf(); err != nil {
		return nil, err
	}
	return aConf, nil
}
