package mocks

//go:generate sh -c "mockgen -package mocklogging -destination logging/connection_tracer.go github.com/ubc-systopia/quic-cc/logging ConnectionTracer"
