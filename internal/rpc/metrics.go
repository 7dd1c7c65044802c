package rpc

import "expvar"

var (
	metricPrecheckReject = expvar.NewInt("rpc_precheck_reject_total")
	metricBadPayload     = expvar.NewInt("rpc_bad_payload_total")
)

func incPrecheckReject() { metricPrecheckReject.Add(1) }
func incBadPayload()     { metricBadPayload.Add(1) }
