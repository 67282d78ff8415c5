package hostsim

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fopscorp/nixiewatch"
)

type metrics struct {
	reg *prometheus.Registry

	ticks          prometheus.Counter
	serialRequests prometheus.Counter
	timeSets       prometheus.Counter
	motionEvents   prometheus.Counter
	mode           *prometheus.GaugeVec
	displayOn      prometheus.Gauge
	battery        prometheus.Gauge
	minuteOfDay    prometheus.Gauge
}

var modes = []nixiewatch.DisplayMode{
	nixiewatch.ModeIdle,
	nixiewatch.ModeTime,
	nixiewatch.ModeCharge,
	nixiewatch.ModeBoth,
	nixiewatch.ModeEmptyBattery,
}

func newMetrics(id nixiewatch.Identity) *metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	m := &metrics{
		reg: reg,
		ticks: f.NewCounter(prometheus.CounterOpts{
			Name: "nixiewatch_ticks_total",
			Help: "timer interrupts run",
		}),
		serialRequests: f.NewCounter(prometheus.CounterOpts{
			Name: "nixiewatch_serial_requests_total",
			Help: "serial receive interrupts run",
		}),
		timeSets: f.NewCounter(prometheus.CounterOpts{
			Name: "nixiewatch_time_sets_total",
			Help: "serial requests that set the time",
		}),
		motionEvents: f.NewCounter(prometheus.CounterOpts{
			Name: "nixiewatch_motion_events_total",
			Help: "motion interrupts that saw the sensor's motion bit",
		}),
		mode: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "nixiewatch_display_mode",
			Help: "1 for the display mode of the cycle in progress",
		}, []string{"mode"}),
		displayOn: f.NewGauge(prometheus.GaugeOpts{
			Name: "nixiewatch_display_on",
			Help: "1 while the tube supply is enabled",
		}),
		battery: f.NewGauge(prometheus.GaugeOpts{
			Name: "nixiewatch_battery_level",
			Help: "charge level from the last battery sample, 0-255",
		}),
		minuteOfDay: f.NewGauge(prometheus.GaugeOpts{
			Name: "nixiewatch_minute_of_day",
			Help: "watch time as minutes since midnight",
		}),
	}
	f.NewGauge(prometheus.GaugeOpts{
		Name: "nixiewatch_device_info",
		Help: "USB identity the watch enumerates with",
		ConstLabels: prometheus.Labels{
			"manufacturer": id.Manufacturer,
			"product":      id.Product,
			"serial":       id.Serial,
		},
	}).Set(1)
	return m
}

func (m *metrics) observe(w *nixiewatch.Watch, on bool) {
	cur := w.Mode()
	for _, mode := range modes {
		v := 0.0
		if mode == cur {
			v = 1
		}
		m.mode.WithLabelValues(mode.String()).Set(v)
	}
	if on {
		m.displayOn.Set(1)
	} else {
		m.displayOn.Set(0)
	}
	m.battery.Set(float64(w.ChargeLevel()))
	h, mm := w.Time()
	m.minuteOfDay.Set(float64(int(h)*60 + int(mm)))
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
