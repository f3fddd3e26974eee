package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/gltf-viewer/internal/engine/model"
	"github.com/Faultbox/gltf-viewer/internal/logger"
)

// createBufferObjects uploads every model buffer into a GL buffer object.
// Handle i corresponds to model buffer i; the returned slice always has
// exactly len(m.Buffers) entries. The buffers are uploaded once and never
// written again (GL 4.1 core has no immutable storage, so immutability is
// a contract, not an enforcement). Attribute layout happens in
// createVertexArrayObjects, not here.
func createBufferObjects(m *model.Model) []uint32 {
	handles := make([]uint32, len(m.Buffers))
	if len(handles) == 0 {
		return handles
	}
	gl.GenBuffers(int32(len(handles)), &handles[0])

	for i, buf := range m.Buffers {
		if len(buf.Data) == 0 {
			continue
		}
		gl.BindBuffer(gl.ARRAY_BUFFER, handles[i])
		gl.BufferData(gl.ARRAY_BUFFER, len(buf.Data), gl.Ptr(buf.Data), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	logger.Log.Debug("buffer objects created", zap.Int("count", len(handles)))
	return handles
}

// deleteBufferObjects releases the GL buffers created by
// createBufferObjects.
func deleteBufferObjects(handles []uint32) {
	if len(handles) > 0 {
		gl.DeleteBuffers(int32(len(handles)), &handles[0])
	}
}
