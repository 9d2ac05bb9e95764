package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// OrbitCamera circles a fixed target point.
type OrbitCamera struct {
	Target      mgl32.Vec3
	Distance    float32
	Yaw         float32
	Pitch       float32
	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32
}

func NewOrbitCamera(width, height int) *OrbitCamera {
	return &OrbitCamera{
		Target:      mgl32.Vec3{0, 1.5, 1},
		Distance:    14,
		Yaw:         0,
		Pitch:       0.35,
		AspectRatio: float32(width) / float32(height),
		FOV:         60.0,
		NearPlane:   0.1,
		FarPlane:    500.0,
	}
}

func (c *OrbitCamera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

func (c *OrbitCamera) GetViewMatrix() mgl32.Mat4 {
	eye := c.Target.Add(mgl32.Vec3{
		c.Distance * cos32(c.Pitch) * sin32(c.Yaw),
		c.Distance * sin32(c.Pitch),
		c.Distance * cos32(c.Pitch) * cos32(c.Yaw),
	})
	return mgl32.LookAtV(eye, c.Target, mgl32.Vec3{0, 1, 0})
}

// Orbit adjusts yaw and pitch, clamping pitch away from the poles.
func (c *OrbitCamera) Orbit(dyaw, dpitch float32) {
	c.Yaw += dyaw
	c.Pitch += dpitch
	if c.Pitch > 1.4 {
		c.Pitch = 1.4
	}
	if c.Pitch < -1.4 {
		c.Pitch = -1.4
	}
}

// Zoom adjusts the orbit distance within sane bounds.
func (c *OrbitCamera) Zoom(delta float32) {
	c.Distance += delta
	if c.Distance < 2 {
		c.Distance = 2
	}
	if c.Distance > 80 {
		c.Distance = 80
	}
}

func sin32(x float32) float32 { return float32(math.Sin(float64(x))) }
func cos32(x float32) float32 { return float32(math.Cos(float64(x))) }
