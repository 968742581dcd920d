package scene

// NewDefaultScene renders DefaultWorld from straight down the -z axis
func NewDefaultScene() (*Scene, error) {
	return &Scene{
		Name:   "default",
		World:  DefaultWorld(),
		Camera: DefaultCameraConfig(),
	}, nil
}
