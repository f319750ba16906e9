package bind_group_provider

// BufferWrite describes one queue write into a provider's buffer at a byte offset.
// The renderer batches these when uploading the camera uniform.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}
