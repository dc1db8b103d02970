package platform

import "testing"

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if o.appName() != DefaultAppName {
		t.Errorf("appName: got %q", o.appName())
	}
	if o.timeout() != 5000 {
		t.Errorf("timeout: got %d", o.timeout())
	}
	o = Options{AppName: "x", TimeoutMillis: 10}
	if o.appName() != "x" || o.timeout() != 10 {
		t.Errorf("explicit options ignored: %+v", o)
	}
}
