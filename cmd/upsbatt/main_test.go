package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2ctest"

	"github.com/charlie0129/upsbatt/pkg/i2cbus"
	"github.com/charlie0129/upsbatt/pkg/ina219"
)

// withBus makes openBus return open's result for the duration of t.
func withBus(t *testing.T, open func() (i2c.BusCloser, error)) {
	t.Helper()

	old := openBus
	openBus = open
	t.Cleanup(func() {
		openBus = old
	})
}

// playback returns a bus answering one bus voltage read per word.
func playback(words ...uint16) func() (i2c.BusCloser, error) {
	return func() (i2c.BusCloser, error) {
		bus := &i2ctest.Playback{DontPanic: true}
		for _, w := range words {
			bus.Ops = append(bus.Ops, i2ctest.IO{
				Addr: ina219.Address,
				W:    []byte{ina219.BusVoltageRegister},
				R:    []byte{byte(w), byte(w >> 8)},
			})
		}
		return bus, nil
	}
}

func unavailable() (i2c.BusCloser, error) {
	return nil, errors.Wrap(i2cbus.ErrCapabilityUnavailable, "no host driver")
}

func execute(args ...string) (stdout, stderr string, code int) {
	var out, errOut bytes.Buffer

	// A nil slice would make cobra fall back to os.Args.
	if args == nil {
		args = []string{}
	}

	cmd := NewCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	code = run(cmd, &errOut)
	return out.String(), errOut.String(), code
}

func TestRoot(t *testing.T) {
	tests := []struct {
		name       string
		open       func() (i2c.BusCloser, error)
		wantStdout string
		wantStderr string
		wantCode   int
	}{
		{
			name:       "charging pack",
			open:       playback(0x0834),
			wantStdout: "6.66,1\n",
			wantCode:   0,
		},
		{
			name:       "full pack",
			open:       playback(0x1F40),
			wantStdout: "8.20,0\n",
			wantCode:   0,
		},
		{
			name:       "capability unavailable",
			open:       unavailable,
			wantStderr: "0.0,0\n",
			wantCode:   1,
		},
		{
			name:       "transaction error",
			open:       playback(),
			wantStderr: "0.0,0\n",
			wantCode:   1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withBus(t, tt.open)

			stdout, stderr, code := execute()
			if stdout != tt.wantStdout {
				t.Errorf("stdout = %q, want %q", stdout, tt.wantStdout)
			}
			if stderr != tt.wantStderr {
				t.Errorf("stderr = %q, want %q", stderr, tt.wantStderr)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
		})
	}
}

func TestRoot_RejectsArguments(t *testing.T) {
	withBus(t, playback(0x0834))

	stdout, stderr, code := execute("7")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if !strings.HasPrefix(stderr, "Error: ") {
		t.Errorf("stderr = %q, want an Error: line", stderr)
	}
}

func TestStatus_JSON(t *testing.T) {
	withBus(t, playback(0x0834))

	stdout, stderr, code := execute("status", "--json")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}

	var got statusJSON
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("failed to decode status: %v\n%s", err, stdout)
	}

	want := statusUPSJSON{
		Bus:              "1",
		Address:          "0x42",
		VoltageVolts:     6.66,
		EstimatedPercent: 13,
		AssumedCharging:  true,
	}
	if got.UPS != want {
		t.Errorf("status.ups = %+v, want %+v", got.UPS, want)
	}
}

func TestStatus_Unavailable(t *testing.T) {
	withBus(t, unavailable)

	stdout, stderr, code := execute("status")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if !strings.HasPrefix(stderr, "Error: failed to read UPS battery") {
		t.Errorf("stderr = %q, want a read failure", stderr)
	}
	if !strings.Contains(stderr, "Is I2C enabled") {
		t.Errorf("stderr = %q, want I2C hints", stderr)
	}
}

func TestVersion(t *testing.T) {
	stdout, _, code := execute("version")
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if stdout == "" {
		t.Errorf("version printed nothing")
	}
}
