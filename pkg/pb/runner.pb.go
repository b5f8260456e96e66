// Code generated by protoc-gen-go. DO NOT EDIT.
// versions:
// 	protoc-gen-go v1.36.10
// 	protoc        v7.35.1
// source: runner.proto

package pb

import (
	protoreflect "google.golang.org/protobuf/reflect/protoreflect"
	protoimpl "google.golang.org/protobuf/runtime/protoimpl"
	reflect "reflect"
	sync "sync"
	unsafe "unsafe"
)

const (
	// Verify that this generated code is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(20 - protoimpl.MinVersion)
	// Verify that runtime/protoimpl is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(protoimpl.MaxVersion - 20)
)

// ErrorCode is shared with the runner process so failures carry structured
// causes across the RPC boundary.
type ErrorCode int32

const (
	ErrorCode_ERROR_CODE_UNSPECIFIED   ErrorCode = 0
	ErrorCode_UNKNOWN                  ErrorCode = 1
	ErrorCode_INTERNAL                 ErrorCode = 2
	ErrorCode_INVALID_ARGUMENT         ErrorCode = 3
	ErrorCode_NOT_FOUND                ErrorCode = 4
	ErrorCode_UNAVAILABLE              ErrorCode = 5
	ErrorCode_TIMEOUT                  ErrorCode = 6
	ErrorCode_CANCELLED                ErrorCode = 7
	ErrorCode_AUDIO_DEVICE_OPEN_FAILED ErrorCode = 10
	ErrorCode_AUDIO_SINK_OPEN_FAILED   ErrorCode = 11
	ErrorCode_AUDIO_VAD_FAILED         ErrorCode = 12
	ErrorCode_ASR_TRANSCRIPTION_FAILED ErrorCode = 20
	ErrorCode_ASR_MODEL_LOAD_FAILED    ErrorCode = 21
	ErrorCode_LLM_NOT_LOADED           ErrorCode = 30
	ErrorCode_LLM_GENERATION_FAILED    ErrorCode = 31
	ErrorCode_LLM_CONTEXT_TOO_LONG     ErrorCode = 32
	ErrorCode_LLM_MODEL_LOAD_FAILED    ErrorCode = 33
	ErrorCode_SESSION_ALREADY_RUNNING  ErrorCode = 40
	ErrorCode_SESSION_NOT_RUNNING      ErrorCode = 41
	ErrorCode_SESSION_DRAIN_TIMEOUT    ErrorCode = 42
	ErrorCode_CONFIG_INVALID           ErrorCode = 50
	ErrorCode_CONFIG_MISSING           ErrorCode = 51
)

// Enum value maps for ErrorCode.
var (
	ErrorCode_name = map[int32]string{
		0:  "ERROR_CODE_UNSPECIFIED",
		1:  "UNKNOWN",
		2:  "INTERNAL",
		3:  "INVALID_ARGUMENT",
		4:  "NOT_FOUND",
		5:  "UNAVAILABLE",
		6:  "TIMEOUT",
		7:  "CANCELLED",
		10: "AUDIO_DEVICE_OPEN_FAILED",
		11: "AUDIO_SINK_OPEN_FAILED",
		12: "AUDIO_VAD_FAILED",
		20: "ASR_TRANSCRIPTION_FAILED",
		21: "ASR_MODEL_LOAD_FAILED",
		30: "LLM_NOT_LOADED",
		31: "LLM_GENERATION_FAILED",
		32: "LLM_CONTEXT_TOO_LONG",
		33: "LLM_MODEL_LOAD_FAILED",
		40: "SESSION_ALREADY_RUNNING",
		41: "SESSION_NOT_RUNNING",
		42: "SESSION_DRAIN_TIMEOUT",
		50: "CONFIG_INVALID",
		51: "CONFIG_MISSING",
	}
	ErrorCode_value = map[string]int32{
		"ERROR_CODE_UNSPECIFIED":   0,
		"UNKNOWN":                  1,
		"INTERNAL":                 2,
		"INVALID_ARGUMENT":         3,
		"NOT_FOUND":                4,
		"UNAVAILABLE":              5,
		"TIMEOUT":                  6,
		"CANCELLED":                7,
		"AUDIO_DEVICE_OPEN_FAILED": 10,
		"AUDIO_SINK_OPEN_FAILED":   11,
		"AUDIO_VAD_FAILED":         12,
		"ASR_TRANSCRIPTION_FAILED": 20,
		"ASR_MODEL_LOAD_FAILED":    21,
		"LLM_NOT_LOADED":           30,
		"LLM_GENERATION_FAILED":    31,
		"LLM_CONTEXT_TOO_LONG":     32,
		"LLM_MODEL_LOAD_FAILED":    33,
		"SESSION_ALREADY_RUNNING":  40,
		"SESSION_NOT_RUNNING":      41,
		"SESSION_DRAIN_TIMEOUT":    42,
		"CONFIG_INVALID":           50,
		"CONFIG_MISSING":           51,
	}
)

func (x ErrorCode) Enum() *ErrorCode {
	p := new(ErrorCode)
	*p = x
	return p
}

func (x ErrorCode) String() string {
	return protoimpl.X.EnumStringOf(x.Descriptor(), protoreflect.EnumNumber(x))
}

func (ErrorCode) Descriptor() protoreflect.EnumDescriptor {
	return file_runner_proto_enumTypes[0].Descriptor()
}

func (ErrorCode) Type() protoreflect.EnumType {
	return &file_runner_proto_enumTypes[0]
}

func (x ErrorCode) Number() protoreflect.EnumNumber {
	return protoreflect.EnumNumber(x)
}

// Deprecated: Use ErrorCode.Descriptor instead.
func (ErrorCode) EnumDescriptor() ([]byte, []int) {
	return file_runner_proto_rawDescGZIP(), []int{0}
}

type VadRequest struct {
	state protoimpl.MessageState `protogen:"open.v1"`
	// Little-endian signed 16-bit PCM, mono.
	AudioChunk    []byte `protobuf:"bytes,1,opt,name=audio_chunk,json=audioChunk,proto3" json:"audio_chunk,omitempty"`
	SampleRate    int32  `protobuf:"varint,2,opt,name=sample_rate,json=sampleRate,proto3" json:"sample_rate,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *VadRequest) Reset() {
	*x = VadRequest{}
	mi := &file_runner_proto_msgTypes[0]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *VadRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*VadRequest) ProtoMessage() {}

func (x *VadRequest) ProtoReflect() protoreflect.Message {
	mi := &file_runner_proto_msgTypes[0]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use VadRequest.ProtoReflect.Descriptor instead.
func (*VadRequest) Descriptor() ([]byte, []int) {
	return file_runner_proto_rawDescGZIP(), []int{0}
}

func (x *VadRequest) GetAudioChunk() []byte {
	if x != nil {
		return x.AudioChunk
	}
	return nil
}

func (x *VadRequest) GetSampleRate() int32 {
	if x != nil {
		return x.SampleRate
	}
	return 0
}

type VadResponse struct {
	state             protoimpl.MessageState `protogen:"open.v1"`
	SpeechProbability float32                `protobuf:"fixed32,1,opt,name=speech_probability,json=speechProbability,proto3" json:"speech_probability,omitempty"`
	IsSpeech          bool                   `protobuf:"varint,2,opt,name=is_speech,json=isSpeech,proto3" json:"is_speech,omitempty"`
	unknownFields     protoimpl.UnknownFields
	sizeCache         protoimpl.SizeCache
}

func (x *VadResponse) Reset() {
	*x = VadResponse{}
	mi := &file_runner_proto_msgTypes[1]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *VadResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*VadResponse) ProtoMessage() {}

func (x *VadResponse) ProtoReflect() protoreflect.Message {
	mi := &file_runner_proto_msgTypes[1]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use VadResponse.ProtoReflect.Descriptor instead.
func (*VadResponse) Descriptor() ([]byte, []int) {
	return file_runner_proto_rawDescGZIP(), []int{1}
}

func (x *VadResponse) GetSpeechProbability() float32 {
	if x != nil {
		return x.SpeechProbability
	}
	return 0
}

func (x *VadResponse) GetIsSpeech() bool {
	if x != nil {
		return x.IsSpeech
	}
	return false
}

type ResetStateRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *ResetStateRequest) Reset() {
	*x = ResetStateRequest{}
	mi := &file_runner_proto_msgTypes[2]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *ResetStateRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*ResetStateRequest) ProtoMessage() {}

func (x *ResetStateRequest) ProtoReflect() protoreflect.Message {
	mi := &file_runner_proto_msgTypes[2]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use ResetStateRequest.ProtoReflect.Descriptor instead.
func (*ResetStateRequest) Descriptor() ([]byte, []int) {
	return file_runner_proto_rawDescGZIP(), []int{2}
}

type ResetStateResponse struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Success       bool                   `protobuf:"varint,1,opt,name=success,proto3" json:"success,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *ResetStateResponse) Reset() {
	*x = ResetStateResponse{}
	mi := &file_runner_proto_msgTypes[3]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *ResetStateResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*ResetStateResponse) ProtoMessage() {}

func (x *ResetStateResponse) ProtoReflect() protoreflect.Message {
	mi := &file_runner_proto_msgTypes[3]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use ResetStateResponse.ProtoReflect.Descriptor instead.
func (*ResetStateResponse) Descriptor() ([]byte, []int) {
	return file_runner_proto_rawDescGZIP(), []int{3}
}

func (x *ResetStateResponse) GetSuccess() bool {
	if x != nil {
		return x.Success
	}
	return false
}

type TranscribeRequest struct {
	state protoimpl.MessageState `protogen:"open.v1"`
	// Little-endian signed 16-bit PCM, mono.
	AudioData     []byte `protobuf:"bytes,1,opt,name=audio_data,json=audioData,proto3" json:"audio_data,omitempty"`
	SampleRate    int32  `protobuf:"varint,2,opt,name=sample_rate,json=sampleRate,proto3" json:"sample_rate,omitempty"`
	Language      string `protobuf:"bytes,3,opt,name=language,proto3" json:"language,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *TranscribeRequest) Reset() {
	*x = TranscribeRequest{}
	mi := &file_runner_proto_msgTypes[4]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *TranscribeRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*TranscribeRequest) ProtoMessage() {}

func (x *TranscribeRequest) ProtoReflect() protoreflect.Message {
	mi := &file_runner_proto_msgTypes[4]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use TranscribeRequest.ProtoReflect.Descriptor instead.
func (*TranscribeRequest) Descriptor() ([]byte, []int) {
	return file_runner_proto_rawDescGZIP(), []int{4}
}

func (x *TranscribeRequest) GetAudioData() []byte {
	if x != nil {
		return x.AudioData
	}
	return nil
}

func (x *TranscribeRequest) GetSampleRate() int32 {
	if x != nil {
		return x.SampleRate
	}
	return 0
}

func (x *TranscribeRequest) GetLanguage() string {
	if x != nil {
		return x.Language
	}
	return ""
}

type TranscribeResponse struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Text          string                 `protobuf:"bytes,1,opt,name=text,proto3" json:"text,omitempty"`
	DurationSecs  float32                `protobuf:"fixed32,2,opt,name=duration_secs,json=durationSecs,proto3" json:"duration_secs,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *TranscribeResponse) Reset() {
	*x = TranscribeResponse{}
	mi := &file_runner_proto_msgTypes[5]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *TranscribeResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*TranscribeResponse) ProtoMessage() {}

func (x *TranscribeResponse) ProtoReflect() protoreflect.Message {
	mi := &file_runner_proto_msgTypes[5]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use TranscribeResponse.ProtoReflect.Descriptor instead.
func (*TranscribeResponse) Descriptor() ([]byte, []int) {
	return file_runner_proto_rawDescGZIP(), []int{5}
}

func (x *TranscribeResponse) GetText() string {
	if x != nil {
		return x.Text
	}
	return ""
}

func (x *TranscribeResponse) GetDurationSecs() float32 {
	if x != nil {
		return x.DurationSecs
	}
	return 0
}

type LoadModelRequest struct {
	state protoimpl.MessageState `protogen:"open.v1"`
	Path  string                 `protobuf:"bytes,1,opt,name=path,proto3" json:"path,omitempty"`
	// "asr" or "llm".
	Kind          string `protobuf:"bytes,2,opt,name=kind,proto3" json:"kind,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *LoadModelRequest) Reset() {
	*x = LoadModelRequest{}
	mi := &file_runner_proto_msgTypes[6]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *LoadModelRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*LoadModelRequest) ProtoMessage() {}

func (x *LoadModelRequest) ProtoReflect() protoreflect.Message {
	mi := &file_runner_proto_msgTypes[6]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use LoadModelRequest.ProtoReflect.Descriptor instead.
func (*LoadModelRequest) Descriptor() ([]byte, []int) {
	return file_runner_proto_rawDescGZIP(), []int{6}
}

func (x *LoadModelRequest) GetPath() string {
	if x != nil {
		return x.Path
	}
	return ""
}

func (x *LoadModelRequest) GetKind() string {
	if x != nil {
		return x.Kind
	}
	return ""
}

type LoadModelResponse struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Success       bool                   `protobuf:"varint,1,opt,name=success,proto3" json:"success,omitempty"`
	Model         string                 `protobuf:"bytes,2,opt,name=model,proto3" json:"model,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *LoadModelResponse) Reset() {
	*x = LoadModelResponse{}
	mi := &file_runner_proto_msgTypes[7]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *LoadModelResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*LoadModelResponse) ProtoMessage() {}

func (x *LoadModelResponse) ProtoReflect() protoreflect.Message {
	mi := &file_runner_proto_msgTypes[7]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use LoadModelResponse.ProtoReflect.Descriptor instead.
func (*LoadModelResponse) Descriptor() ([]byte, []int) {
	return file_runner_proto_rawDescGZIP(), []int{7}
}

func (x *LoadModelResponse) GetSuccess() bool {
	if x != nil {
		return x.Success
	}
	return false
}

func (x *LoadModelResponse) GetModel() string {
	if x != nil {
		return x.Model
	}
	return ""
}

type GenerateRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Prompt        string                 `protobuf:"bytes,1,opt,name=prompt,proto3" json:"prompt,omitempty"`
	MaxTokens     int32                  `protobuf:"varint,2,opt,name=max_tokens,json=maxTokens,proto3" json:"max_tokens,omitempty"`
	Temperature   float32                `protobuf:"fixed32,3,opt,name=temperature,proto3" json:"temperature,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *GenerateRequest) Reset() {
	*x = GenerateRequest{}
	mi := &file_runner_proto_msgTypes[8]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *GenerateRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*GenerateRequest) ProtoMessage() {}

func (x *GenerateRequest) ProtoReflect() protoreflect.Message {
	mi := &file_runner_proto_msgTypes[8]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use GenerateRequest.ProtoReflect.Descriptor instead.
func (*GenerateRequest) Descriptor() ([]byte, []int) {
	return file_runner_proto_rawDescGZIP(), []int{8}
}

func (x *GenerateRequest) GetPrompt() string {
	if x != nil {
		return x.Prompt
	}
	return ""
}

func (x *GenerateRequest) GetMaxTokens() int32 {
	if x != nil {
		return x.MaxTokens
	}
	return 0
}

func (x *GenerateRequest) GetTemperature() float32 {
	if x != nil {
		return x.Temperature
	}
	return 0
}

type GenerateChunk struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Content       string                 `protobuf:"bytes,1,opt,name=content,proto3" json:"content,omitempty"`
	Done          bool                   `protobuf:"varint,2,opt,name=done,proto3" json:"done,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *GenerateChunk) Reset() {
	*x = GenerateChunk{}
	mi := &file_runner_proto_msgTypes[9]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *GenerateChunk) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*GenerateChunk) ProtoMessage() {}

func (x *GenerateChunk) ProtoReflect() protoreflect.Message {
	mi := &file_runner_proto_msgTypes[9]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use GenerateChunk.ProtoReflect.Descriptor instead.
func (*GenerateChunk) Descriptor() ([]byte, []int) {
	return file_runner_proto_rawDescGZIP(), []int{9}
}

func (x *GenerateChunk) GetContent() string {
	if x != nil {
		return x.Content
	}
	return ""
}

func (x *GenerateChunk) GetDone() bool {
	if x != nil {
		return x.Done
	}
	return false
}

type ErrorDetail struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Code          ErrorCode              `protobuf:"varint,1,opt,name=code,proto3,enum=lectern.runner.v1.ErrorCode" json:"code,omitempty"`
	Message       string                 `protobuf:"bytes,2,opt,name=message,proto3" json:"message,omitempty"`
	Metadata      map[string]string      `protobuf:"bytes,3,rep,name=metadata,proto3" json:"metadata,omitempty" protobuf_key:"bytes,1,opt,name=key" protobuf_val:"bytes,2,opt,name=value"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *ErrorDetail) Reset() {
	*x = ErrorDetail{}
	mi := &file_runner_proto_msgTypes[10]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *ErrorDetail) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*ErrorDetail) ProtoMessage() {}

func (x *ErrorDetail) ProtoReflect() protoreflect.Message {
	mi := &file_runner_proto_msgTypes[10]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use ErrorDetail.ProtoReflect.Descriptor instead.
func (*ErrorDetail) Descriptor() ([]byte, []int) {
	return file_runner_proto_rawDescGZIP(), []int{10}
}

func (x *ErrorDetail) GetCode() ErrorCode {
	if x != nil {
		return x.Code
	}
	return ErrorCode_ERROR_CODE_UNSPECIFIED
}

func (x *ErrorDetail) GetMessage() string {
	if x != nil {
		return x.Message
	}
	return ""
}

func (x *ErrorDetail) GetMetadata() map[string]string {
	if x != nil {
		return x.Metadata
	}
	return nil
}

var File_runner_proto protoreflect.FileDescriptor

const file_runner_proto_rawDesc = "" +
	"\n" +
	"\frunner.proto\x12\x11lectern.runner.v1\"N\n" +
	"\n" +
	"VadRequest\x12\x1f\n" +
	"\vaudio_chunk\x18\x01 \x01(\fR\n" +
	"audioChunk\x12\x1f\n" +
	"\vsample_rate\x18\x02 \x01(\x05R\n" +
	"sampleRate\"Y\n" +
	"\vVadResponse\x12-\n" +
	"\x12speech_probability\x18\x01 \x01(\x02R\x11speechProbability\x12\x1b\n" +
	"\tis_speech\x18\x02 \x01(\bR\bisSpeech\"\x13\n" +
	"\x11ResetStateRequest\".\n" +
	"\x12ResetStateResponse\x12\x18\n" +
	"\asuccess\x18\x01 \x01(\bR\asuccess\"o\n" +
	"\x11TranscribeRequest\x12\x1d\n" +
	"\n" +
	"audio_data\x18\x01 \x01(\fR\taudioData\x12\x1f\n" +
	"\vsample_rate\x18\x02 \x01(\x05R\n" +
	"sampleRate\x12\x1a\n" +
	"\blanguage\x18\x03 \x01(\tR\blanguage\"M\n" +
	"\x12TranscribeResponse\x12\x12\n" +
	"\x04text\x18\x01 \x01(\tR\x04text\x12#\n" +
	"\rduration_secs\x18\x02 \x01(\x02R\fdurationSecs\":\n" +
	"\x10LoadModelRequest\x12\x12\n" +
	"\x04path\x18\x01 \x01(\tR\x04path\x12\x12\n" +
	"\x04kind\x18\x02 \x01(\tR\x04kind\"C\n" +
	"\x11LoadModelResponse\x12\x18\n" +
	"\asuccess\x18\x01 \x01(\bR\asuccess\x12\x14\n" +
	"\x05model\x18\x02 \x01(\tR\x05model\"j\n" +
	"\x0fGenerateRequest\x12\x16\n" +
	"\x06prompt\x18\x01 \x01(\tR\x06prompt\x12\x1d\n" +
	"\n" +
	"max_tokens\x18\x02 \x01(\x05R\tmaxTokens\x12 \n" +
	"\vtemperature\x18\x03 \x01(\x02R\vtemperature\"=\n" +
	"\rGenerateChunk\x12\x18\n" +
	"\acontent\x18\x01 \x01(\tR\acontent\x12\x12\n" +
	"\x04done\x18\x02 \x01(\bR\x04done\"\xe0\x01\n" +
	"\vErrorDetail\x120\n" +
	"\x04code\x18\x01 \x01(\x0e2\x1c.lectern.runner.v1.ErrorCodeR\x04code\x12\x18\n" +
	"\amessage\x18\x02 \x01(\tR\amessage\x12H\n" +
	"\bmetadata\x18\x03 \x03(\v2,.lectern.runner.v1.ErrorDetail.MetadataEntryR\bmetadata\x1a;\n" +
	"\rMetadataEntry\x12\x10\n" +
	"\x03key\x18\x01 \x01(\tR\x03key\x12\x14\n" +
	"\x05value\x18\x02 \x01(\tR\x05value:\x028\x01*\xfa\x03\n" +
	"\tErrorCode\x12\x1a\n" +
	"\x16ERROR_CODE_UNSPECIFIED\x10\x00\x12\v\n" +
	"\aUNKNOWN\x10\x01\x12\f\n" +
	"\bINTERNAL\x10\x02\x12\x14\n" +
	"\x10INVALID_ARGUMENT\x10\x03\x12\r\n" +
	"\tNOT_FOUND\x10\x04\x12\x0f\n" +
	"\vUNAVAILABLE\x10\x05\x12\v\n" +
	"\aTIMEOUT\x10\x06\x12\r\n" +
	"\tCANCELLED\x10\a\x12\x1c\n" +
	"\x18AUDIO_DEVICE_OPEN_FAILED\x10\n" +
	"\x12\x1a\n" +
	"\x16AUDIO_SINK_OPEN_FAILED\x10\v\x12\x14\n" +
	"\x10AUDIO_VAD_FAILED\x10\f\x12\x1c\n" +
	"\x18ASR_TRANSCRIPTION_FAILED\x10\x14\x12\x19\n" +
	"\x15ASR_MODEL_LOAD_FAILED\x10\x15\x12\x12\n" +
	"\x0eLLM_NOT_LOADED\x10\x1e\x12\x19\n" +
	"\x15LLM_GENERATION_FAILED\x10\x1f\x12\x18\n" +
	"\x14LLM_CONTEXT_TOO_LONG\x10 \x12\x19\n" +
	"\x15LLM_MODEL_LOAD_FAILED\x10!\x12\x1b\n" +
	"\x17SESSION_ALREADY_RUNNING\x10(\x12\x17\n" +
	"\x13SESSION_NOT_RUNNING\x10)\x12\x19\n" +
	"\x15SESSION_DRAIN_TIMEOUT\x10*\x12\x12\n" +
	"\x0eCONFIG_INVALID\x102\x12\x12\n" +
	"\x0eCONFIG_MISSING\x1032\xb6\x01\n" +
	"\n" +
	"VadService\x12M\n" +
	"\fDetectSpeech\x12\x1d.lectern.runner.v1.VadRequest\x1a\x1e.lectern.runner.v1.VadResponse\x12Y\n" +
	"\n" +
	"ResetState\x12$.lectern.runner.v1.ResetStateRequest\x1a%.lectern.runner.v1.ResetStateResponse2\xc9\x01\n" +
	"\x14TranscriptionService\x12Y\n" +
	"\n" +
	"Transcribe\x12$.lectern.runner.v1.TranscribeRequest\x1a%.lectern.runner.v1.TranscribeResponse\x12V\n" +
	"\tLoadModel\x12#.lectern.runner.v1.LoadModelRequest\x1a$.lectern.runner.v1.LoadModelResponse2\xbf\x01\n" +
	"\x11GenerationService\x12R\n" +
	"\bGenerate\x12\".lectern.runner.v1.GenerateRequest\x1a .lectern.runner.v1.GenerateChunk0\x01\x12V\n" +
	"\tLoadModel\x12#.lectern.runner.v1.LoadModelRequest\x1a$.lectern.runner.v1.LoadModelResponseB7Z5github.com/lecternhq/lectern/backend/daemon/pkg/pb;pbb\x06proto3"

var (
	file_runner_proto_rawDescOnce sync.Once
	file_runner_proto_rawDescData []byte
)

func file_runner_proto_rawDescGZIP() []byte {
	file_runner_proto_rawDescOnce.Do(func() {
		file_runner_proto_rawDescData = protoimpl.X.CompressGZIP(unsafe.Slice(unsafe.StringData(file_runner_proto_rawDesc), len(file_runner_proto_rawDesc)))
	})
	return file_runner_proto_rawDescData
}

var file_runner_proto_enumTypes = make([]protoimpl.EnumInfo, 1)
var file_runner_proto_msgTypes = make([]protoimpl.MessageInfo, 12)
var file_runner_proto_goTypes = []any{
	(ErrorCode)(0),             // 0: lectern.runner.v1.ErrorCode
	(*VadRequest)(nil),         // 1: lectern.runner.v1.VadRequest
	(*VadResponse)(nil),        // 2: lectern.runner.v1.VadResponse
	(*ResetStateRequest)(nil),  // 3: lectern.runner.v1.ResetStateRequest
	(*ResetStateResponse)(nil), // 4: lectern.runner.v1.ResetStateResponse
	(*TranscribeRequest)(nil),  // 5: lectern.runner.v1.TranscribeRequest
	(*TranscribeResponse)(nil), // 6: lectern.runner.v1.TranscribeResponse
	(*LoadModelRequest)(nil),   // 7: lectern.runner.v1.LoadModelRequest
	(*LoadModelResponse)(nil),  // 8: lectern.runner.v1.LoadModelResponse
	(*GenerateRequest)(nil),    // 9: lectern.runner.v1.GenerateRequest
	(*GenerateChunk)(nil),      // 10: lectern.runner.v1.GenerateChunk
	(*ErrorDetail)(nil),        // 11: lectern.runner.v1.ErrorDetail
	nil,                        // 12: lectern.runner.v1.ErrorDetail.MetadataEntry
}
var file_runner_proto_depIdxs = []int32{
	0,  // 0: lectern.runner.v1.ErrorDetail.code:type_name -> lectern.runner.v1.ErrorCode
	12, // 1: lectern.runner.v1.ErrorDetail.metadata:type_name -> lectern.runner.v1.ErrorDetail.MetadataEntry
	1,  // 2: lectern.runner.v1.VadService.DetectSpeech:input_type -> lectern.runner.v1.VadRequest
	3,  // 3: lectern.runner.v1.VadService.ResetState:input_type -> lectern.runner.v1.ResetStateRequest
	5,  // 4: lectern.runner.v1.TranscriptionService.Transcribe:input_type -> lectern.runner.v1.TranscribeRequest
	7,  // 5: lectern.runner.v1.TranscriptionService.LoadModel:input_type -> lectern.runner.v1.LoadModelRequest
	9,  // 6: lectern.runner.v1.GenerationService.Generate:input_type -> lectern.runner.v1.GenerateRequest
	7,  // 7: lectern.runner.v1.GenerationService.LoadModel:input_type -> lectern.runner.v1.LoadModelRequest
	2,  // 8: lectern.runner.v1.VadService.DetectSpeech:output_type -> lectern.runner.v1.VadResponse
	4,  // 9: lectern.runner.v1.VadService.ResetState:output_type -> lectern.runner.v1.ResetStateResponse
	6,  // 10: lectern.runner.v1.TranscriptionService.Transcribe:output_type -> lectern.runner.v1.TranscribeResponse
	8,  // 11: lectern.runner.v1.TranscriptionService.LoadModel:output_type -> lectern.runner.v1.LoadModelResponse
	10, // 12: lectern.runner.v1.GenerationService.Generate:output_type -> lectern.runner.v1.GenerateChunk
	8,  // 13: lectern.runner.v1.GenerationService.LoadModel:output_type -> lectern.runner.v1.LoadModelResponse
	8,  // [8:14] is the sub-list for method output_type
	2,  // [2:8] is the sub-list for method input_type
	2,  // [2:2] is the sub-list for extension type_name
	2,  // [2:2] is the sub-list for extension extendee
	0,  // [0:2] is the sub-list for field type_name
}

func init() { file_runner_proto_init() }
func file_runner_proto_init() {
	if File_runner_proto != nil {
		return
	}
	type x struct{}
	out := protoimpl.TypeBuilder{
		File: protoimpl.DescBuilder{
			GoPackagePath: reflect.TypeOf(x{}).PkgPath(),
			RawDescriptor: unsafe.Slice(unsafe.StringData(file_runner_proto_rawDesc), len(file_runner_proto_rawDesc)),
			NumEnums:      1,
			NumMessages:   12,
			NumExtensions: 0,
			NumServices:   3,
		},
		GoTypes:           file_runner_proto_goTypes,
		DependencyIndexes: file_runner_proto_depIdxs,
		EnumInfos:         file_runner_proto_enumTypes,
		MessageInfos:      file_runner_proto_msgTypes,
	}.Build()
	File_runner_proto = out.File
	file_runner_proto_goTypes = nil
	file_runner_proto_depIdxs = nil
}
