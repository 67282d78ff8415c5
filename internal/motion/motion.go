// Package motion configures an MPU6050 as a wake-on-motion source and reports its motion
// interrupt.
package motion

import (
	"errors"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/mpu6050"
)

// Registers the mpu6050 driver does not name.
const (
	regMotThr       = 0x1F
	regMotDur       = 0x20
	regMotDetectCtl = 0x69
)

const (
	intPinLatch    = 0x20 // active high, held until INT_STATUS is read
	accelHPF5Hz    = 0x01
	motDecrement   = 0x15
	intMotEnable   = 1 << 6
	intMotStatus   = 1 << 6
	gyroStandbyXYZ = 0x07
)

// Config holds the motion detection tuning.
type Config struct {
	// Threshold is in units of 2 mg.
	Threshold uint8
	// Duration is in milliseconds at the 1 kHz sample rate.
	Duration uint8
}

// DefaultConfig is tuned for a wrist flick.
var DefaultConfig = Config{Threshold: 10, Duration: 40}

var errNotFound = errors.New("motion: MPU6050 not found")

// Sensor is an MPU6050 armed for motion interrupts.
type Sensor struct {
	bus  drivers.I2C
	dev  mpu6050.Device
	conf Config
}

// New returns a sensor on bus at the default address. The bus must already be configured.
// Nothing is sent until Configure.
func New(bus drivers.I2C, conf Config) *Sensor {
	return &Sensor{
		bus:  bus,
		dev:  mpu6050.New(bus),
		conf: conf,
	}
}

// Configure wakes the device, arms the motion interrupt and parks the gyroscope, which
// the watch never reads.
func (s *Sensor) Configure() error {
	if !s.dev.Connected() {
		return errNotFound
	}
	if err := s.dev.Configure(); err != nil {
		return err
	}
	writes := []struct{ reg, val uint8 }{
		{mpu6050.INT_PIN_CFG, intPinLatch},
		{mpu6050.ACCEL_CONFIG, accelHPF5Hz},
		{regMotThr, s.conf.Threshold},
		{regMotDur, s.conf.Duration},
		{regMotDetectCtl, motDecrement},
		{mpu6050.INT_ENABLE, intMotEnable},
	}
	for _, w := range writes {
		if err := s.write(w.reg, w.val); err != nil {
			return err
		}
	}
	pm2, err := s.read(mpu6050.PWR_MGMT_2)
	if err != nil {
		return err
	}
	return s.write(mpu6050.PWR_MGMT_2, pm2|gyroStandbyXYZ)
}

// MotionDetected reads the interrupt status, which also clears the latched interrupt line.
func (s *Sensor) MotionDetected() (bool, error) {
	st, err := s.read(mpu6050.INT_STATUS)
	if err != nil {
		return false, err
	}
	return st&intMotStatus != 0, nil
}

func (s *Sensor) read(reg uint8) (uint8, error) {
	buf := []byte{0}
	err := s.bus.Tx(s.dev.Address, []byte{reg}, buf)
	return buf[0], err
}

func (s *Sensor) write(reg, val uint8) error {
	return s.bus.Tx(s.dev.Address, []byte{reg, val}, nil)
}
