package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhuhelper/dhu-portal-go/internal/campus"
)

func TestClassifyPriorityOrder(t *testing.T) {
	tests := []struct {
		name string
		text string
		kind Kind
	}{
		{"counseling", "我想预约心理咨询", KindCounseling},
		{"counseling beats library", "图书馆旁边能做心理辅导吗", KindCounseling},
		{"library", "图书馆还有座位吗", KindLibrary},
		{"library beats meeting", "图书馆有会议室吗", KindLibrary},
		{"meeting", "帮我订个研讨间", KindMeeting},
		{"canteen", "食堂现在人多吗", KindCanteen},
		{"classroom", "找个自习教室", KindClassroom},
		{"sports generic", "我想运动一下", KindSports},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := classify(tt.text, "")
			require.NotNil(t, res.Payload)
			assert.Equal(t, tt.kind, res.Payload.Kind)
			assert.Equal(t, textFallbackAck, res.Text)
		})
	}
}

func TestClassifySportDisambiguation(t *testing.T) {
	res := classify("想打台球", "")
	require.NotNil(t, res.Payload)
	assert.Equal(t, KindSports, res.Payload.Kind)
	assert.Equal(t, "台球", res.Payload.Sport)
	assert.Equal(t, "台球", res.Payload.Title)

	res = classify("我想运动一下", "")
	require.NotNil(t, res.Payload)
	assert.Equal(t, "羽毛球", res.Payload.Sport)
}

func TestClassifyCapacityAndFeatures(t *testing.T) {
	// The deterministic baseline must still feed the scorer.
	res := classify("帮我找个能容纳6人的投影会议室", "")
	require.NotNil(t, res.Payload)
	assert.Equal(t, KindMeeting, res.Payload.Kind)
	assert.Equal(t, 6, res.Payload.Criteria.MinCapacity)
	assert.Contains(t, res.Payload.Criteria.Requirements, "投影")
	assert.Equal(t, campus.Songjiang, res.Payload.Campus)
}

func TestClassifyQuietMapsToMuteTag(t *testing.T) {
	res := classify("找个安静的自习教室", "")
	require.NotNil(t, res.Payload)
	assert.Equal(t, KindClassroom, res.Payload.Kind)
	assert.Equal(t, []string{"静音"}, res.Payload.Criteria.Requirements)
}

func TestClassifyCampusHandling(t *testing.T) {
	res := classify("延安路有羽毛球场吗", "")
	require.NotNil(t, res.Payload)
	assert.Equal(t, campus.Yanan, res.Payload.Campus)
	assert.Equal(t, campus.Yanan, res.Campus)

	// Sticky session campus applies when the text mentions none.
	res = classify("想打球", campus.Yanan)
	require.NotNil(t, res.Payload)
	assert.Equal(t, campus.Yanan, res.Payload.Campus)

	// Explicit mention beats the sticky campus.
	res = classify("松江校区想打球", campus.Yanan)
	require.NotNil(t, res.Payload)
	assert.Equal(t, campus.Songjiang, res.Payload.Campus)
}

func TestClassifyEntityLookup(t *testing.T) {
	res := classify("计算机学院的网站是什么", "")
	require.NotNil(t, res.Payload)
	assert.Equal(t, KindEntityLink, res.Payload.Kind)
	require.NotNil(t, res.Payload.Entity)
	assert.Equal(t, "计算机科学与技术学院", res.Payload.Entity.Name)
	assert.Equal(t, "为您找到计算机科学与技术学院的入口：", res.Text)
	// Entity home campus wins over the default.
	assert.Equal(t, campus.Songjiang, res.Campus)
}

func TestClassifyApology(t *testing.T) {
	res := classify("今天天气怎么样", "")
	assert.Nil(t, res.Payload)
	assert.Equal(t, textApology, res.Text)
	assert.False(t, res.Campus.Valid())
}

func TestClassifyBookingEvent(t *testing.T) {
	res := classify("[SYSTEM_EVENT] User booked sports: 主体育馆 1号场 at 08:00-09:00.", "")
	assert.Nil(t, res.Payload)
	assert.Equal(t, textBookedSports, res.Text)

	res = classify("[SYSTEM_EVENT] User booked meeting: 图文信息中心 01室 at 10:00-11:00.", "")
	assert.Equal(t, textBookedGeneric, res.Text)
}
