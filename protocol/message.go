// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package protocol

// MessageType is the 32-bit code identifying a message's purpose.
//
// Requests and their replies share the same MessageType; they are
// distinguished solely by direction of travel, which this package does not
// track — package client tracks what it sent to decide what an inbound
// frame of a given code means.
type MessageType uint32

// Recognised MessageType codes.
const (
	MessageTypeControllerCount  MessageType = 0
	MessageTypeControllerData   MessageType = 1
	MessageTypeProtocolVersion  MessageType = 40
	MessageTypeSetClientName    MessageType = 50
	MessageTypeDeviceListUpdate MessageType = 100
	MessageTypeResizeZone       MessageType = 1000
	MessageTypeUpdateLEDs       MessageType = 1050
	MessageTypeUpdateZoneLEDs   MessageType = 1051
	MessageTypeUpdateSingleLED  MessageType = 1052
	MessageTypeSetCustomMode    MessageType = 1100
	MessageTypeUpdateMode       MessageType = 1101
)

// knownMessageTypes enumerates every recognised code, used by known().
var knownMessageTypes = map[MessageType]bool{
	MessageTypeControllerCount:  true,
	MessageTypeControllerData:   true,
	MessageTypeProtocolVersion:  true,
	MessageTypeSetClientName:    true,
	MessageTypeDeviceListUpdate: true,
	MessageTypeResizeZone:       true,
	MessageTypeUpdateLEDs:       true,
	MessageTypeUpdateZoneLEDs:   true,
	MessageTypeUpdateSingleLED:  true,
	MessageTypeSetCustomMode:    true,
	MessageTypeUpdateMode:       true,
}

func (mt MessageType) known() bool { return knownMessageTypes[mt] }

// ExpectsReply reports whether sending a message of this type should enqueue
// a pending reply expectation. DeviceListUpdated is server-initiated only
// and never sent by a client; it is listed here as false for completeness.
func (mt MessageType) ExpectsReply() bool {
	switch mt {
	case MessageTypeControllerCount, MessageTypeControllerData, MessageTypeProtocolVersion:
		return true
	default:
		return false
	}
}

// IsNotification reports whether this code is server-initiated only and
// bypasses the pending-reply queue entirely.
func (mt MessageType) IsNotification() bool {
	return mt == MessageTypeDeviceListUpdate
}

// Frame is a fully decoded inbound or constructed outbound frame: a header
// plus its raw body bytes, prior to body-specific decoding.
type Frame struct {
	Header Header
	Body   []byte
}

// EncodeMessage serialises a full frame (header + body) for an outbound
// request to deviceIdx.
func EncodeMessage(deviceIdx uint32, req Request) ([]byte, error) {
	bodySize := req.BodySize()
	w := NewWriter(HeaderSize + bodySize)

	h := NewHeader(deviceIdx, req.Type(), uint32(bodySize))
	hb, err := h.Encode()
	if err != nil {
		return nil, err
	}
	w.PutBytes(hb)

	bodyW := NewWriter(bodySize)
	req.EncodeBody(bodyW)
	if bodyW.Len() != bodySize {
		return nil, Errorf(KindMalformed,
			"%v: calculated body size %d does not match encoded size %d",
			req.Type(), bodySize, bodyW.Len())
	}
	w.PutBytes(bodyW.Bytes())

	return w.Bytes(), nil
}

// Request is an outbound, client-to-server message body.
type Request interface {
	// Type is the message's MessageType code.
	Type() MessageType
	// BodySize returns the exact number of bytes EncodeBody will write.
	BodySize() int
	// EncodeBody writes the message body (excluding the frame header) to w.
	EncodeBody(w *Writer)
}

// --- Requests (client -> server) -------------------------------------------

// RequestControllerCount asks the server how many controllers it manages.
// Body is empty.
type RequestControllerCount struct{}

func (RequestControllerCount) Type() MessageType  { return MessageTypeControllerCount }
func (RequestControllerCount) BodySize() int     { return 0 }
func (RequestControllerCount) EncodeBody(*Writer) {}

// RequestControllerData asks the server for a controller's full description.
type RequestControllerData struct {
	ProtocolVersion uint32
}

func (RequestControllerData) Type() MessageType { return MessageTypeControllerData }
func (RequestControllerData) BodySize() int     { return 4 }
func (r RequestControllerData) EncodeBody(w *Writer) {
	w.PutU32(r.ProtocolVersion)
}

// RequestProtocolVersion begins the handshake, advertising the client's
// implemented protocol version.
type RequestProtocolVersion struct {
	ClientVersion uint32
}

func (RequestProtocolVersion) Type() MessageType { return MessageTypeProtocolVersion }
func (RequestProtocolVersion) BodySize() int     { return 4 }
func (r RequestProtocolVersion) EncodeBody(w *Writer) {
	w.PutU32(r.ClientVersion)
}

// SetClientName tells the server the client's display name. It has no reply.
type SetClientName struct {
	Name string
}

func (SetClientName) Type() MessageType { return MessageTypeSetClientName }
func (s SetClientName) BodySize() int   { return StringSize(s.Name) }
func (s SetClientName) EncodeBody(w *Writer) {
	w.PutString(s.Name)
}

// ResizeZone asks the server to resize a zone. It has no reply.
type ResizeZone struct {
	ZoneIdx uint32
	NewSize uint32
}

func (ResizeZone) Type() MessageType { return MessageTypeResizeZone }
func (ResizeZone) BodySize() int     { return 8 }
func (r ResizeZone) EncodeBody(w *Writer) {
	w.PutU32(r.ZoneIdx)
	w.PutU32(r.NewSize)
}

// UpdateLEDs updates every LED on a device at once. It has no reply.
//
// The body begins with a 32-bit data_size mirroring the frame's body_size;
// both are set from the same calculation.
type UpdateLEDs struct {
	Colors []Color
}

func (UpdateLEDs) Type() MessageType { return MessageTypeUpdateLEDs }
func (u UpdateLEDs) BodySize() int {
	return 4 + 2 + len(u.Colors)*ColorSize
}
func (u UpdateLEDs) EncodeBody(w *Writer) {
	w.PutU32(uint32(u.BodySize()))
	w.PutU16(uint16(len(u.Colors)))
	for _, c := range u.Colors {
		w.PutColor(c)
	}
}

// UpdateZoneLEDs updates every LED within a single zone. It has no reply.
type UpdateZoneLEDs struct {
	ZoneIdx uint32
	Colors  []Color
}

func (UpdateZoneLEDs) Type() MessageType { return MessageTypeUpdateZoneLEDs }
func (u UpdateZoneLEDs) BodySize() int {
	return 4 + 4 + 2 + len(u.Colors)*ColorSize
}
func (u UpdateZoneLEDs) EncodeBody(w *Writer) {
	w.PutU32(uint32(u.BodySize()))
	w.PutU32(u.ZoneIdx)
	w.PutU16(uint16(len(u.Colors)))
	for _, c := range u.Colors {
		w.PutColor(c)
	}
}

// UpdateSingleLED updates one LED. It has no reply.
type UpdateSingleLED struct {
	LedIdx uint32
	Color  Color
}

func (UpdateSingleLED) Type() MessageType { return MessageTypeUpdateSingleLED }
func (UpdateSingleLED) BodySize() int     { return 4 + ColorSize }
func (u UpdateSingleLED) EncodeBody(w *Writer) {
	w.PutU32(u.LedIdx)
	w.PutColor(u.Color)
}

// SetCustomMode switches a device into its "custom" (direct) mode. It has no
// reply. Body is empty.
type SetCustomMode struct{}

func (SetCustomMode) Type() MessageType  { return MessageTypeSetCustomMode }
func (SetCustomMode) BodySize() int     { return 0 }
func (SetCustomMode) EncodeBody(*Writer) {}

// UpdateMode updates a device mode's parameters. It has no reply.
//
// As with UpdateLEDs, the body begins with a 32-bit data_size mirroring the
// frame's body_size.
//
// The exact effect of this operation on which mode becomes the device's
// active mode is unspecified by the upstream protocol; this type exposes
// the raw wire operation without inferring or asserting a resulting
// ActiveMode. Callers that need to observe the effect should re-issue
// RequestControllerData.
type UpdateMode struct {
	ModeIdx uint32
	Mode    ModeDescription
}

func (UpdateMode) Type() MessageType { return MessageTypeUpdateMode }
func (u UpdateMode) BodySize() int {
	return 4 + 4 + u.Mode.CalcSize()
}
func (u UpdateMode) EncodeBody(w *Writer) {
	w.PutU32(uint32(u.BodySize()))
	w.PutU32(u.ModeIdx)
	u.Mode.Serialise(w)
}

// --- Replies and notifications (server -> client) --------------------------

// ReplyControllerCount carries the total number of controllers the server
// manages.
type ReplyControllerCount struct {
	Count uint32
}

// DecodeReplyControllerCount decodes a ReplyControllerCount body.
func DecodeReplyControllerCount(r *Reader) (*ReplyControllerCount, error) {
	count, err := r.GetU32()
	if err != nil {
		return nil, err
	}
	return &ReplyControllerCount{Count: count}, nil
}

// ReplyControllerData carries a controller's full description.
//
// Its body begins with a 32-bit data_size mirroring the frame's body_size.
type ReplyControllerData struct {
	DataSize uint32
	Device   DeviceDescription
}

// DecodeReplyControllerData decodes a ReplyControllerData body.
//
// DecodeReplyControllerData enforces the dual-size mirror: data_size must
// equal the total number of bytes in the body (including the data_size
// field itself), failing with KindMalformed otherwise.
func DecodeReplyControllerData(r *Reader) (*ReplyControllerData, error) {
	totalLen := r.Remaining()

	dataSize, err := r.GetU32()
	if err != nil {
		return nil, err
	}
	var dev DeviceDescription
	if err := dev.Deserialise(r); err != nil {
		return nil, err
	}

	if int(dataSize) != totalLen {
		return nil, Errorf(KindMalformed,
			"data_size %d does not match body length %d", dataSize, totalLen)
	}

	return &ReplyControllerData{DataSize: dataSize, Device: dev}, nil
}

// ReplyProtocolVersion carries the server's implemented protocol version.
type ReplyProtocolVersion struct {
	ServerVersion uint32
}

// DecodeReplyProtocolVersion decodes a ReplyProtocolVersion body.
func DecodeReplyProtocolVersion(r *Reader) (*ReplyProtocolVersion, error) {
	v, err := r.GetU32()
	if err != nil {
		return nil, err
	}
	return &ReplyProtocolVersion{ServerVersion: v}, nil
}

// DeviceListUpdated is a server-initiated notification with an empty body,
// indicating the client should refresh its device inventory.
type DeviceListUpdated struct{}
