package main

import (
	"log"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"sandvox/internal/config"
	"sandvox/internal/game"
	"sandvox/internal/graphics"
	"sandvox/internal/input"
)

func init() { runtime.LockOSThread() }

func main() {
	cfg, err := config.Load("sandvox.yaml")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := glfw.Init(); err != nil {
		log.Fatalf("glfw: %v", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(cfg)
	if err != nil {
		log.Fatalf("window: %v", err)
	}

	if err := gl.Init(); err != nil {
		log.Fatalf("opengl: %v", err)
	}

	session, err := game.NewSession(cfg)
	if err != nil {
		log.Fatalf("world: %v", err)
	}
	defer session.Close()

	renderer, err := graphics.NewRenderer(cfg.AtlasPath)
	if err != nil {
		log.Fatalf("renderer: %v", err)
	}
	defer renderer.Shutdown()

	cam := graphics.NewCamera(cfg.WindowWidth, cfg.WindowHeight, float32(cfg.FOV))
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
		cam.Resize(width, height)
	})

	im := input.NewManager()
	im.InstallCallbacks(window)

	mouse := newMouseState(window)

	gl.ClearColor(0.39, 0.58, 0.93, 1.0)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)

	log.Printf("world ready: %d chunks, %d light nodes queued",
		len(session.Store.Chunks()), session.Lights.Pending())

	lastFrame := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - lastFrame
		lastFrame = now
		if dt > 0.25 {
			dt = 0.25 // clamp after stalls so physics stays stable
		}

		in := gatherInput(im, mouse)
		session.Tick(dt, in)
		session.DrainReady(renderer.Upload)

		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		renderer.Draw(cam, session.Player.ViewMatrix(), session.Player.EyePosition())

		im.PostUpdate()
		window.SwapBuffers()
		glfw.PollEvents()
	}
}

// gatherInput converts raw input state into one tick's worth of game
// input. Clicks only reach the game while the cursor is captured; the
// first click after losing capture re-captures instead.
func gatherInput(im *input.Manager, mouse *mouseState) game.Input {
	in := game.Input{SelectSlot: -1}

	if im.JustPressed(input.ActionPause) {
		mouse.release()
	}

	leftClick := im.JustPressed(input.ActionMouseLeft)
	rightClick := im.JustPressed(input.ActionMouseRight)
	if !mouse.captured {
		if leftClick || rightClick {
			mouse.capture()
		}
		leftClick, rightClick = false, false
	}

	in.Move.Forward = im.IsActive(input.ActionMoveForward)
	in.Move.Backward = im.IsActive(input.ActionMoveBackward)
	in.Move.Left = im.IsActive(input.ActionMoveLeft)
	in.Move.Right = im.IsActive(input.ActionMoveRight)
	in.Move.Jump = im.IsActive(input.ActionJump)
	in.Move.Descend = im.IsActive(input.ActionDescend)
	in.Move.JumpPressed = im.JustPressed(input.ActionJump)

	in.BreakBlock = leftClick
	in.PlaceBlock = rightClick

	for i := 0; i < 9; i++ {
		if im.JustPressed(input.ActionHotbar1 + input.Action(i)) {
			in.SelectSlot = i
		}
	}
	in.CycleSlots = im.ConsumeScroll()

	if mouse.captured {
		in.MouseDX, in.MouseDY = mouse.consumeDelta()
	}
	return in
}
