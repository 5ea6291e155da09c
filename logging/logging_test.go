package logging

import (
	"encoding/json"
	"testing"

	"go.viam.com/test"
)

func TestLevelStrings(t *testing.T) {
	for _, level := range []Level{DEBUG, INFO, WARN, ERROR} {
		parsed, err := LevelFromString(level.String())
		test.That(t, err, test.ShouldBeNil)
		test.That(t, parsed, test.ShouldEqual, level)
	}

	_, err := LevelFromString("verbose")
	test.That(t, err, test.ShouldNotBeNil)

	parsed, err := LevelFromString("WARNING")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, parsed, test.ShouldEqual, WARN)
}

func TestLevelJSON(t *testing.T) {
	data, err := json.Marshal(ERROR)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(data), test.ShouldEqual, `"Error"`)

	var level Level
	test.That(t, json.Unmarshal([]byte(`"debug"`), &level), test.ShouldBeNil)
	test.That(t, level, test.ShouldEqual, DEBUG)
	test.That(t, json.Unmarshal([]byte(`"loud"`), &level), test.ShouldNotBeNil)
}

func TestObservedLogger(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	logger.Debugw("searching", "attempt", 3)
	logger.Info("found")
	test.That(t, logs.Len(), test.ShouldEqual, 2)
	test.That(t, logs.FilterMessage("searching").Len(), test.ShouldEqual, 1)

	logger.SetLevel(WARN)
	test.That(t, logger.GetLevel(), test.ShouldEqual, WARN)
	logger.Info("dropped")
	logger.Warnf("kept %d", 1)
	test.That(t, logs.Len(), test.ShouldEqual, 3)
	test.That(t, logs.FilterMessage("kept 1").Len(), test.ShouldEqual, 1)
}

func TestSubloggerLevel(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	sub := logger.Sublogger("ik")
	sub.SetLevel(ERROR)
	sub.Warn("quiet")
	logger.Warn("loud")
	test.That(t, logs.Len(), test.ShouldEqual, 1)
	test.That(t, logger.GetLevel(), test.ShouldEqual, DEBUG)
}

func TestBlankLogger(t *testing.T) {
	logger := NewBlankLogger("blank")
	logger.Errorf("nothing %s", "here")
	test.That(t, logger.Sync(), test.ShouldBeNil)
}
