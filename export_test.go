package vizgen

var (
	WriteFileAtomic = writeFileAtomic
	CtxWithLogger   = ctxWithLogger
)
