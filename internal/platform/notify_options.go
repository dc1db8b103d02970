package platform

// DefaultAppName is reported to the notification service when Options.AppName is empty.
const DefaultAppName = "Edifyx"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName identifies the sender to the notification service.
	AppName string
	// IconPath, when non-empty, points to an image file shown with the
	// notification where the platform supports it.
	IconPath string
	// TimeoutMillis is how long the notification stays visible. Zero uses 5000.
	TimeoutMillis int32
}

func (o Options) appName() string {
	if o.AppName == "" {
		return DefaultAppName
	}
	return o.AppName
}

func (o Options) timeout() int32 {
	if o.TimeoutMillis <= 0 {
		return 5000
	}
	return o.TimeoutMillis
}
