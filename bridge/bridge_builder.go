package bridge

// BridgeBuilderOption is a functional option for configuring a Bridge.
type BridgeBuilderOption func(*bridge)

// WithTransferLogging logs every successful transfer at debug level.
//
// Parameters:
//   - enabled: true to log transfers
//
// Returns:
//   - BridgeBuilderOption: option function to apply
func WithTransferLogging(enabled bool) BridgeBuilderOption {
	return func(b *bridge) {
		b.logTransfers = enabled
	}
}

// WithTransferHook registers a function called after every successful transfer
// with the updated stats. It runs on the transferring goroutine.
//
// Parameters:
//   - hook: the function to call
//
// Returns:
//   - BridgeBuilderOption: option function to apply
func WithTransferHook(hook func(Stats)) BridgeBuilderOption {
	return func(b *bridge) {
		b.onTransfer = hook
	}
}
