package trace

const (
	// Ledger history API
	ResolveBlock  SpanName = "history.resolveBlock"
	TipOfChain    SpanName = "history.tipOfChain"
	WalletReceive SpanName = "history.walletReceive"
	GetCycles     SpanName = "history.getCycles"
	Interface     SpanName = "history.interface"

	// Individual hops of a block resolution
	LookupPrimary SpanName = "resolver.lookupPrimary"
	LookupArchive SpanName = "resolver.lookupArchive"
)
