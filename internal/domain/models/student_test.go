package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentMarshalJSONInjectsDisplayID(t *testing.T) {
	serial := int64(3)
	student := Student{
		ID:     "11111111-2222-3333-4444-555566667777",
		Serial: &serial,
		Name:   "Rahul Kumar",
		Room:   "A1",
	}

	data, err := json.Marshal(student)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, "SMA-00003", out["displayId"])
	assert.Equal(t, student.ID, out["id"])
	// 空头像引用不出现在响应里
	_, hasImage := out["profileImage"]
	assert.False(t, hasImage)
}

func TestStudentMarshalJSONFallbackDisplayID(t *testing.T) {
	student := Student{
		ID:   "64f1c2d3-e4a5-b6c7-d8e9-fa0b1a2b3",
		Name: "Legacy Resident",
		Room: "B2",
	}

	data, err := json.Marshal(student)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))

	// 序列号缺失时从不透明ID末尾推导，0x1a2b3 % 100000 = 7187
	assert.Equal(t, "SMA-07187", out["displayId"])
	// 缺失的序列号不序列化为null
	_, hasSerial := out["serial"]
	assert.False(t, hasSerial)
}

func TestStudentMarshalJSONIncludesProfileImage(t *testing.T) {
	student := Student{
		ID:   "11111111-2222-3333-4444-555566667777",
		Name: "Priya Sharma",
		Room: "B2",
		ProfileImage: ProfileImage{
			URL:    "https://ik.imagekit.io/demo/photo.jpg",
			FileID: "file_abc123",
		},
	}

	data, err := json.Marshal(student)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))

	img, ok := out["profileImage"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "https://ik.imagekit.io/demo/photo.jpg", img["url"])
	assert.Equal(t, "file_abc123", img["fileId"])
}

func TestIsValidDocumentType(t *testing.T) {
	for _, valid := range []string{"aadhar", "pan", "college_id", "other"} {
		assert.True(t, IsValidDocumentType(valid), valid)
	}
	for _, invalid := range []string{"", "passport", "AADHAR", "id"} {
		assert.False(t, IsValidDocumentType(invalid), invalid)
	}
}
