package machine

import (
	"context"
	"fmt"
	"sync"

	"github.com/JebManMan/MeBot/common"
	"github.com/JebManMan/MeBot/common/adaptorapi"
	"github.com/JebManMan/MeBot/common/behaviorapi"
	"github.com/JebManMan/MeBot/common/message"
	"github.com/JebManMan/MeBot/common/messagerouter"
	"github.com/JebManMan/MeBot/common/types"
	"github.com/JebManMan/MeBot/pkg/drivers"
	"github.com/JebManMan/MeBot/pkg/robot"

	multierror "github.com/hashicorp/go-multierror"
	logging "github.com/op/go-logging"
)

var (
	logger = logging.MustGetLogger("mebot-machine")
)

// Machine is an assembled robot: adaptor, motors, modes and the control
// loop that runs them.
type Machine struct {
	mutex     sync.RWMutex
	MachineID string
	conf      *Conf
	adaptor   adaptorapi.Adaptor
	robot     *robot.Robot
	led       *drivers.StatusLED
	loop      *robot.Loop
	router    *messagerouter.Router
	subs      []subscription
	cancel    context.CancelFunc
	running   bool
	Status    *MachineStatus
}

// subscription routes one message type to a mode's queue.
type subscription struct {
	msgType string
	queue   *message.Queue
}

// NewMachine builds the machine described by conf. Nothing touches the
// hardware until Start.
func NewMachine(conf *Conf) (*Machine, error) {
	if conf == nil {
		return nil, fmt.Errorf("configuration is nil")
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	aConf, err := conf.AdaptorConf()
	if err != nil {
		return nil, err
	}
	adpt, err := adaptorapi.NewAdaptor(aConf)
	if err != nil {
		return nil, err
	}
	left, err := conf.LeftMotor.NewMotor("left", adpt)
	if err != nil {
		return nil, err
	}
	right, err := conf.RightMotor.NewMotor("right", adpt)
	if err != nil {
		return nil, err
	}

	mh := &Machine{
		MachineID: conf.MachineID,
		conf:      conf,
		adaptor:   adpt,
		robot:     robot.New(left, right),
		router:    messagerouter.NewRouter(),
		Status:    &MachineStatus{},
	}

	if conf.StatusLEDPin != "" {
		mh.led = drivers.NewStatusLED(adpt, conf.StatusLEDPin)
	}

	bConfs, err := conf.BehaviorConfs()
	if err != nil {
		return nil, err
	}
	for i, bConf := range bConfs {
		var rcvQ *message.Queue
		if subs := bConf.GetSubscriptions(); len(subs) > 0 {
			// Note: queue id includes the position, mode ids may repeat.
			rcvQ = message.NewQueue(fmt.Sprintf("mode-%d-%d", bConf.GetID(), i))
			for _, msgType := range subs {
				mh.subs = append(mh.subs, subscription{msgType: msgType, queue: rcvQ})
			}
		}
		b, err := behaviorapi.NewBehavior(bConf, adpt, rcvQ)
		if err != nil {
			return nil, err
		}
		mh.robot.AddMode(bConf.GetID(), b)
		logger.Debugf("registered mode %d (%s) on machine %s", bConf.GetID(), bConf.GetType(), mh.MachineID)
	}
	mh.robot.SetMode(conf.InitialMode)
	if _, found := findMode(mh.robot.Modes(), conf.InitialMode); !found {
		logger.Warningf("initial mode %d is not registered, the robot will idle until a mode is selected", conf.InitialMode)
	}
	return mh, nil
}

func findMode(modes []types.ModeInfo, id int) (types.ModeInfo, bool) {
	for _, m := range modes {
		if m.ID == id {
			return m, true
		}
	}
	return types.ModeInfo{}, false
}

func (mh *Machine) LogStatus(code StatusCode, msg string) {
	mh.Status.add(Status{Code: code, Msg: msg})
}

func (mh *Machine) LogStatusOK(msg string) {
	mh.Status.add(NewStatusOK(msg))
}

// Start routes messages to the modes, attaches the adaptor, configures the
// motor pins and starts the control loop. The loop stops when ctx is done
// or Stop is called; Stop must still be called to release the adaptor.
func (mh *Machine) Start(ctx context.Context) error {
	mh.mutex.Lock()
	defer mh.mutex.Unlock()
	if mh.running {
		return fmt.Errorf("machine %s is already running", mh.MachineID)
	}

	for _, sub := range mh.subs {
		if err := mh.router.AddSubscriber(sub.msgType, sub.queue); err != nil {
			mh.router.Stop()
			mh.LogStatus(Failure, fmt.Sprintf("Could not route %s messages: %s", sub.msgType, err))
			return err
		}
	}
	if err := mh.adaptor.Attach(); err != nil {
		mh.router.Stop()
		mh.LogStatus(Failure, fmt.Sprintf("Could not attach adaptor: %s", err))
		return err
	}
	if err := mh.robot.Setup(); err != nil {
		mh.router.Stop()
		mh.LogStatus(Failure, fmt.Sprintf("Could not set up motors: %s", err))
		if dErr := mh.adaptor.Detach(); dErr != nil {
			err = multierror.Append(err, dErr)
		}
		return err
	}

	if mh.led != nil {
		if err := mh.led.Start(); err != nil {
			mh.LogStatus(Warning, fmt.Sprintf("Could not start status led: %s", err))
		}
	}

	loopCtx, cancel := context.WithCancel(ctx)
	mh.cancel = cancel
	mh.loop = robot.NewLoop(mh.robot, mh.conf.Interval())
	mh.loop.ModeChanged = func(from, to int) {
		mh.LogStatus(Info, fmt.Sprintf("mode %d -> %d", from, to))
		if mh.led != nil {
			mh.led.Blink()
		}
	}
	go mh.loop.Run(loopCtx)
	mh.running = true

	mh.LogStatusOK(fmt.Sprintf("Started machine %s in mode %d", mh.MachineID, mh.conf.InitialMode))
	return nil
}

// Stop halts the control loop, stops the motors and detaches the adaptor.
func (mh *Machine) Stop() error {
	mh.mutex.Lock()
	defer mh.mutex.Unlock()
	if !mh.running {
		return nil
	}
	mh.cancel()
	<-mh.loop.Done()
	mh.running = false
	mh.router.Stop()

	var result error
	if mh.led != nil {
		if err := mh.led.Halt(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := mh.adaptor.Detach(); err != nil {
		mh.LogStatus(Failure, fmt.Sprintf("Could not detach adaptor: %s", err))
		result = multierror.Append(result, err)
	} else {
		mh.LogStatusOK(fmt.Sprintf("Stopped machine %s", mh.MachineID))
	}
	return result
}

// Done is closed when the control loop exits. It returns nil before Start.
func (mh *Machine) Done() <-chan struct{} {
	mh.mutex.RLock()
	defer mh.mutex.RUnlock()
	if mh.loop == nil {
		return nil
	}
	return mh.loop.Done()
}

// Running reports whether the control loop is ticking.
func (mh *Machine) Running() bool {
	mh.mutex.RLock()
	defer mh.mutex.RUnlock()
	return mh.looping()
}

// looping: caller must hold the mutex.
func (mh *Machine) looping() bool {
	if !mh.running {
		return false
	}
	select {
	case <-mh.loop.Done():
		return false
	default:
		return true
	}
}

func (mh *Machine) Ping() *types.PingResponse {
	return &types.PingResponse{
		MachineID: mh.MachineID,
		Version:   common.Version,
	}
}

// GetStatus returns a snapshot of the robot state.
func (mh *Machine) GetStatus(ctx context.Context) (*types.StatusResponse, error) {
	mh.mutex.RLock()
	defer mh.mutex.RUnlock()

	resp := &types.StatusResponse{
		MachineID: mh.MachineID,
		Running:   mh.looping(),
		Status:    mh.Status.String(),
		Log:       mh.Status.Entries(),
	}
	read := func(r *robot.Robot) {
		resp.ActiveMode = r.ActiveMode()
		resp.LastActiveMode = r.LastActiveMode()
		resp.Modes = r.Modes()
	}
	if !resp.Running {
		read(mh.robot)
		return resp, nil
	}
	if err := mh.loop.Do(ctx, read); err != nil {
		return nil, err
	}
	return resp, nil
}

// SetMode selects the mode run from the next tick.
func (mh *Machine) SetMode(ctx context.Context, id int) error {
	mh.mutex.RLock()
	defer mh.mutex.RUnlock()
	if !mh.looping() {
		return types.ErrLoopStopped
	}
	if _, found := findMode(mh.robot.Modes(), id); !found {
		logger.Warningf("selecting unregistered mode %d on machine %s", id, mh.MachineID)
	}
	return mh.loop.RequestMode(ctx, id)
}

// Drive queues a drive command for every mode that accepts them. Only the
// latest queued command is kept per mode.
func (mh *Machine) Drive(req types.DriveRequest) error {
	if !types.ValidDriveCommand(req.Command) {
		return fmt.Errorf("%w: %q", types.ErrUnknownDriveCommand, req.Command)
	}
	left, err := common.DutyFromInt(req.Left)
	if err != nil {
		return fmt.Errorf("left: %s", err)
	}
	right, err := common.DutyFromInt(req.Right)
	if err != nil {
		return fmt.Errorf("right: %s", err)
	}
	if !mh.Running() {
		return types.ErrLoopStopped
	}
	if n := mh.router.Publish(message.NewDriveMessage(req.Command, left, right)); n == 0 {
		return fmt.Errorf("no mode on machine %s accepts drive commands", mh.MachineID)
	}
	return nil
}

func (mh *Machine) String() string {
	return fmt.Sprintf("machine %s: %s", mh.MachineID, mh.robot)
}
