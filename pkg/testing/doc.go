// Package testing provides deterministic frame stepping for animation tests.
//
// # Quick Start
//
// Create a tester, drive a controller, and pump frames on a fake clock:
//
//	func TestFade(t *testing.T) {
//	    tester := motiontest.NewFrameTesterWithT(t)
//	    c := tester.Controller()
//	    c.Update(animation.Props{
//	        From: animation.Values{"opacity": 0},
//	        To:   animation.Values{"opacity": 1},
//	    })
//	    c.Start(nil, nil)
//
//	    if err := tester.PumpAndSettle(2 * time.Second); err != nil {
//	        t.Fatal(err)
//	    }
//	}
//
// Every pumped frame advances the fake clock by [FrameTester.FrameDuration]
// (16ms unless changed) before stepping the frame loop.
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import motiontest "github.com/go-drift/motion/pkg/testing"
package testing
