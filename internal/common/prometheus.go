package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	ApplicationApprovedTotal   = "application_approved_total"
	PinningFailureTotal        = "pinning_failure_total"
	RpcFailureTotal            = "rpc_failure_total"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"path", "code"}),
		ApplicationApprovedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: ApplicationApprovedTotal,
			Help: "Count of applications approved",
		}, []string{"hunger_level"}),
		PinningFailureTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: PinningFailureTotal,
			Help: "Count of failed IPFS pinning calls",
		}, []string{"kind"}),
		RpcFailureTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: RpcFailureTotal,
			Help: "Count of failed ethereum RPC calls",
		}, []string{"method"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"path", "code"}),
	}
)
