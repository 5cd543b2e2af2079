package gohyperion_test

import (
	"errors"
	"net"
	"strings"
	"time"

	. "github.com/pdf/gohyperion"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/mock"

	"github.com/pdf/gohyperion/common"
	"github.com/pdf/gohyperion/mocks"
	"github.com/pdf/gohyperion/protocol"
)

const serverInfoReply = `LOG: starting
{"info":{"hostname":"x","hyperion_build":[{"version":"1.03.3","time":"Jun 1 2017"}],` +
	`"priorities":[{"priority":1,"duration_ms":5000,"owner":"Effect"}],` +
	`"correction":[{"id":"default","correctionValues":[255,255,255]}],` +
	`"temperature":[{"id":"default","correctionValues":[255,240,230]}],` +
	`"adjustment":[{"id":"default","redAdjust":[255,0,0],"greenAdjust":[0,255,0],"blueAdjust":[0,0,255]}],` +
	`"transform":[{"id":"default","saturationGain":1.0,"valueGain":1.0,"saturationLGain":1.0,"luminanceGain":1.0,` +
	`"luminanceMinimum":0.0,"threshold":[0,0,0],"gamma":[2.5,2.5,2.5],"blacklevel":[0,0,0],"whitelevel":[1,1,1]}],` +
	`"effects":[{"name":"Foo","script":"a","args":{}},{"name":"Knight rider","script":"knight-rider.py","args":{"speed":1.0,"color":[255,0,0]}}],` +
	`"activeEffects":[{"script":"a","args":{},"priority":1}],` +
	`"activeLedColor":[{"HEX Value":["0xFF0000"],"RGB Value":[255,0,0]}]},"success":true}
`

var _ = Describe("Client", func() {
	var (
		server     *fakeServer
		client     *Client
		mockLogger *mocks.Logger
		timeout    = 200 * time.Millisecond
	)

	BeforeEach(func() {
		mockLogger = new(mocks.Logger).AllowAll()
		SetLogger(mockLogger)
	})

	AfterEach(func() {
		if client != nil {
			_ = client.Close(false)
		}
		if server != nil {
			server.close()
		}
		client, server = nil, nil
		SetLogger(nil)
	})

	It("should default to the local server", func() {
		client = NewClient(``, 0)
		Expect(client.Host()).To(Equal(common.DefaultHost))
		Expect(client.Port()).To(Equal(common.DefaultPort))
		Expect(client.Address()).To(Equal(`127.0.0.1:19444`))
		Expect(client.Connected()).To(BeFalse())
	})

	It("should update host and port", func() {
		client = NewClient(``, 0)
		client.SetHost(`10.0.0.1`)
		client.SetPort(1234)
		Expect(client.Address()).To(Equal(`10.0.0.1:1234`))
	})

	It("should update the timeouts", func() {
		client = NewClient(``, 0)
		client.SetConnectTimeout(time.Second)
		client.SetReceiveTimeout(3 * time.Second)
		Expect(client.GetConnectTimeout()).To(Equal(time.Second))
		Expect(client.GetReceiveTimeout()).To(Equal(3 * time.Second))
	})

	Describe("connection lifecycle", func() {
		BeforeEach(func() {
			server = newFakeServer(``, nil)
			client = NewClient(`127.0.0.1`, server.port())
		})

		It("should connect", func() {
			Expect(client.Open(timeout)).To(Succeed())
			Expect(client.Connected()).To(BeTrue())
		})

		It("should ignore Open when already connected", func() {
			Expect(client.Open(timeout)).To(Succeed())
			Expect(client.Open(timeout)).To(Succeed())
			Expect(client.Connected()).To(BeTrue())
		})

		It("should stay connected across accessors", func() {
			server.setReply(serverInfoReply)
			client.SetReceiveTimeout(50 * time.Millisecond)
			Expect(client.Open(timeout)).To(Succeed())
			_, err := client.Hostname()
			Expect(err).NotTo(HaveOccurred())
			Expect(client.Connected()).To(BeTrue())
			_, err = client.Effects()
			Expect(err).NotTo(HaveOccurred())
			Expect(client.Connected()).To(BeTrue())
		})

		It("should close twice without error", func() {
			Expect(client.Open(timeout)).To(Succeed())
			Expect(client.Close(false)).To(Succeed())
			Expect(client.Connected()).To(BeFalse())
			Expect(client.Close(false)).To(Succeed())
			Expect(client.Connected()).To(BeFalse())
		})

		It("should ignore Close when never connected", func() {
			Expect(client.Close(true)).To(Succeed())
			Expect(client.Connected()).To(BeFalse())
		})

		It("should clear all before a clean close", func() {
			Expect(client.Open(timeout)).To(Succeed())
			Expect(client.Close(true)).To(Succeed())
			Eventually(server.lines).Should(Receive(Equal(`{"command":"clearall"}`)))
		})

		It("should reconnect after close", func() {
			Expect(client.Open(timeout)).To(Succeed())
			Expect(client.Close(false)).To(Succeed())
			Expect(client.Open(timeout)).To(Succeed())
			Expect(client.Connected()).To(BeTrue())
		})
	})

	Describe("connection failures", func() {
		BeforeEach(func() {
			client = NewClient(`127.0.0.1`, deadPort())
			client.SetConnectTimeout(timeout)
		})

		It("should propagate connection errors from Open", func() {
			err := client.Open(timeout)
			Expect(err).To(HaveOccurred())
			var connErr *common.ConnectionError
			Expect(errors.As(err, &connErr)).To(BeTrue())
			Expect(connErr.Op).To(Equal(`dial`))
			Expect(connErr.Address).To(Equal(client.Address()))
			Expect(connErr.Unwrap()).NotTo(BeNil())
			Expect(client.Connected()).To(BeFalse())
		})

		It("should skip commands when the implicit connect fails", func() {
			Expect(client.SetColor(common.Color{Red: 1}, 50, 0)).To(Equal(common.ErrNotConnected))
			Expect(client.Connected()).To(BeFalse())
			mockLogger.AssertCalled(GinkgoT(), `Warnf`, mock.MatchedBy(func(format string) bool {
				return strings.Contains(format, `autoconnecting`)
			}), mock.Anything)
		})

		It("should tag logs with the server address", func() {
			Expect(client.EnsureConnected()).To(BeFalse())
			mockLogger.AssertCalled(GinkgoT(), `Warnf`,
				`[gohyperion `+client.Address()+`] Not connected to server: autoconnecting...`, mock.Anything)
		})

		It("should return an empty serverinfo response when not connected", func() {
			Expect(client.RequestServerInfo()).To(BeEmpty())
		})

		It("should report not connected from accessors", func() {
			_, err := client.Hostname()
			Expect(err).To(Equal(common.ErrNotConnected))
		})

		It("should refuse to send without a connection", func() {
			Expect(client.Send([]byte("{}\n"))).To(Equal(common.ErrNotConnected))
		})

		It("should receive nothing without a connection", func() {
			Expect(client.Receive(timeout)).To(BeEmpty())
		})
	})

	Describe("EnsureConnected", func() {
		It("should connect on demand", func() {
			server = newFakeServer(``, nil)
			client = NewClient(`127.0.0.1`, server.port())
			Expect(client.EnsureConnected()).To(BeTrue())
			Expect(client.Connected()).To(BeTrue())
			mockLogger.AssertCalled(GinkgoT(), `Warnf`, mock.Anything, mock.Anything)
		})

		It("should not reconnect when connected", func() {
			server = newFakeServer(``, nil)
			client = NewClient(`127.0.0.1`, server.port())
			Expect(client.Open(timeout)).To(Succeed())
			Expect(client.EnsureConnected()).To(BeTrue())
			mockLogger.AssertNotCalled(GinkgoT(), `Warnf`, mock.Anything, mock.Anything)
		})
	})

	Describe("Receive", func() {
		It("should give up after twice the timeout when nothing arrives", func() {
			server = newFakeServer(``, nil)
			client = NewClient(`127.0.0.1`, server.port())
			Expect(client.Open(timeout)).To(Succeed())

			start := time.Now()
			Expect(client.Receive(timeout)).To(BeEmpty())
			elapsed := time.Since(start)
			Expect(elapsed).To(BeNumerically(">=", 2*timeout-10*time.Millisecond))
			Expect(elapsed).To(BeNumerically("<", 2*timeout+250*time.Millisecond))
			Expect(client.Connected()).To(BeTrue())
		})

		It("should return one timeout after the last byte", func() {
			server = newFakeServer(``, func(conn net.Conn) {
				_, _ = conn.Write([]byte(`x`))
			})
			client = NewClient(`127.0.0.1`, server.port())
			receiveTimeout := 400 * time.Millisecond
			Expect(client.Open(timeout)).To(Succeed())

			start := time.Now()
			Expect(client.Receive(receiveTimeout)).To(Equal(`x`))
			elapsed := time.Since(start)
			Expect(elapsed).To(BeNumerically(">=", receiveTimeout-50*time.Millisecond))
			Expect(elapsed).To(BeNumerically("<", 2*receiveTimeout-100*time.Millisecond))
		})

		It("should accumulate chunks until the server goes quiet", func() {
			server = newFakeServer(``, func(conn net.Conn) {
				go func() {
					_, _ = conn.Write([]byte(`ab`))
					time.Sleep(50 * time.Millisecond)
					_, _ = conn.Write([]byte(`cd`))
				}()
			})
			client = NewClient(`127.0.0.1`, server.port())
			Expect(client.Open(timeout)).To(Succeed())
			Expect(client.Receive(timeout)).To(Equal(`abcd`))
		})

		It("should mark the client disconnected when the server hangs up", func() {
			server = newFakeServer(``, func(conn net.Conn) {
				_, _ = conn.Write([]byte(`bye`))
				_ = conn.Close()
			})
			client = NewClient(`127.0.0.1`, server.port())
			Expect(client.Open(timeout)).To(Succeed())

			start := time.Now()
			Expect(client.Receive(time.Second)).To(Equal(`bye`))
			Expect(time.Since(start)).To(BeNumerically("<", time.Second))
			Expect(client.Connected()).To(BeFalse())
		})

		It("should reconnect on the next command after the server hung up", func() {
			server = newFakeServer(``, func(conn net.Conn) {
				_ = conn.Close()
			})
			client = NewClient(`127.0.0.1`, server.port())
			Expect(client.Open(timeout)).To(Succeed())
			Expect(client.Receive(time.Second)).To(BeEmpty())
			Expect(client.Connected()).To(BeFalse())

			server.setOnAccept(nil)
			Expect(client.ClearAll()).To(Succeed())
			Expect(client.Connected()).To(BeTrue())
			Eventually(server.lines).Should(Receive(Equal(`{"command":"clearall"}`)))
		})
	})

	Describe("commands", func() {
		BeforeEach(func() {
			server = newFakeServer(``, nil)
			client = NewClient(`127.0.0.1`, server.port())
		})

		It("should connect on demand and send the exact color command", func() {
			Expect(client.SetColor(common.Color{Red: 10, Green: 20, Blue: 30}, 50, 0)).To(Succeed())
			Expect(client.Connected()).To(BeTrue())
			Eventually(server.lines).Should(Receive(Equal(`{"command":"color","priority":50,"color":[10,20,30]}`)))
		})

		It("should include a positive duration in milliseconds", func() {
			Expect(client.SetColor(common.Color{Blue: 255}, 100, 1500*time.Millisecond)).To(Succeed())
			Eventually(server.lines).Should(Receive(Equal(`{"command":"color","priority":100,"color":[0,0,255],"duration":1500}`)))
		})

		It("should send effects", func() {
			Expect(client.SetEffect(`Rainbow swirl`, map[string]interface{}{`speed`: 2}, 64, time.Second)).To(Succeed())
			Eventually(server.lines).Should(Receive(Equal(`{"command":"effect","effect":{"name":"Rainbow swirl","args":{"speed":2}},"priority":64,"duration":1000}`)))
		})

		It("should send clear and clearall", func() {
			Expect(client.Clear(50)).To(Succeed())
			Expect(client.ClearAll()).To(Succeed())
			Eventually(server.lines).Should(Receive(Equal(`{"command":"clear","priority":50}`)))
			Eventually(server.lines).Should(Receive(Equal(`{"command":"clearall"}`)))
		})

		It("should send images", func() {
			Expect(client.SetImage([]byte{1, 2, 3, 4, 5, 6}, 2, 1, 10, 0)).To(Succeed())
			Eventually(server.lines).Should(Receive(Equal(`{"command":"image","imagewidth":2,"imageheight":1,"imagedata":"AQIDBAUG","priority":10}`)))
		})

		It("should reject malformed images without connecting", func() {
			Expect(client.SetImage([]byte{1, 2}, 2, 1, 10, 0)).NotTo(Succeed())
			Expect(client.Connected()).To(BeFalse())
		})

		It("should fail to send missing image files without connecting", func() {
			Expect(client.SetImageFile(`does-not-exist.png`, 8, 8, 0, 10, 0)).NotTo(Succeed())
			Expect(client.Connected()).To(BeFalse())
		})

		It("should send LED frames", func() {
			Expect(client.SendLEDFrame([]byte{150, 150, 150}, 100, 0)).To(Succeed())
			Eventually(server.lines).Should(Receive(Equal(`{"command":"color","priority":100,"color":[150,150,150]}`)))
		})

		It("should send corrections and temperatures", func() {
			Expect(client.SetCorrection(`default`, common.Color{Red: 255, Green: 200, Blue: 180})).To(Succeed())
			Expect(client.SetTemperature(`warm`, common.Color{Red: 255, Green: 240, Blue: 230})).To(Succeed())
			Eventually(server.lines).Should(Receive(Equal(`{"command":"correction","correction":{"id":"default","correctionValues":[255,200,180]}}`)))
			Eventually(server.lines).Should(Receive(Equal(`{"command":"temperature","temperature":{"id":"warm","correctionValues":[255,240,230]}}`)))
		})

		It("should send adjustments", func() {
			Expect(client.SetAdjustment(protocol.Adjustment{
				ID:          `default`,
				RedAdjust:   [3]int{255, 0, 0},
				GreenAdjust: [3]int{0, 255, 0},
				BlueAdjust:  [3]int{0, 0, 255},
			})).To(Succeed())
			Eventually(server.lines).Should(Receive(Equal(`{"command":"adjustment","adjustment":{"id":"default","redAdjust":[255,0,0],"greenAdjust":[0,255,0],"blueAdjust":[0,0,255]}}`)))
		})

		It("should send transforms", func() {
			Expect(client.SetTransform(protocol.Transform{
				ID:              `default`,
				Gamma:           [3]float64{2.5, 2.5, 2.5},
				Whitelevel:      [3]float64{1, 1, 1},
				LuminanceGain:   1,
				SaturationGain:  1.5,
				SaturationLGain: 1,
				ValueGain:       1,
			})).To(Succeed())
			Eventually(server.lines).Should(Receive(Equal(`{"command":"transform","transform":{"id":"default","blacklevel":[0,0,0],"gamma":[2.5,2.5,2.5],` +
				`"luminanceGain":1,"luminanceMinimum":0,"saturationGain":1.5,"saturationLGain":1,"threshold":[0,0,0],"valueGain":1,"whitelevel":[1,1,1]}}`)))
		})
	})

	Describe("server info", func() {
		BeforeEach(func() {
			server = newFakeServer(serverInfoReply, nil)
			client = NewClient(`127.0.0.1`, server.port())
			client.SetReceiveTimeout(50 * time.Millisecond)
		})

		It("should request serverinfo", func() {
			raw := client.RequestServerInfo()
			Expect(raw).To(HavePrefix(`LOG: starting`))
			Eventually(server.lines).Should(Receive(Equal(`{"command":"serverinfo"}`)))
		})

		It("should skip any preamble when parsing", func() {
			si, err := client.ServerInfo()
			Expect(err).NotTo(HaveOccurred())
			Expect(si.Success).To(BeTrue())
			Expect(si.Info.Hostname).To(Equal(`x`))
		})

		It("should expose each section of the info", func() {
			Expect(client.Hostname()).To(Equal(`x`))
			Expect(client.BuildInfo()).To(Equal([]protocol.Build{{Version: `1.03.3`, Time: `Jun 1 2017`}}))
			Expect(client.Priorities()).To(Equal([]protocol.Priority{{Priority: 1, DurationMs: 5000, Owner: `Effect`}}))
			Expect(client.Correction()).To(Equal([]protocol.Correction{{ID: `default`, CorrectionValues: [3]int{255, 255, 255}}}))
			Expect(client.Temperature()).To(Equal([]protocol.Correction{{ID: `default`, CorrectionValues: [3]int{255, 240, 230}}}))
			Expect(client.Adjustment()).To(HaveLen(1))
			transforms, err := client.Transform()
			Expect(err).NotTo(HaveOccurred())
			Expect(transforms).To(HaveLen(1))
			Expect(transforms[0].Gamma).To(Equal([3]float64{2.5, 2.5, 2.5}))
			Expect(client.Effects()).To(HaveLen(2))
			Expect(client.EffectNames()).To(Equal([]string{`Foo`, `Knight rider`}))
			Expect(client.ActiveEffects()).To(Equal([]protocol.ActiveEffect{{Script: `a`, Args: map[string]interface{}{}, Priority: 1}}))
		})

		It("should resolve active effect names", func() {
			Expect(client.ActiveEffectNames()).To(Equal([]string{`Foo`}))
		})

		It("should fail to resolve effects started with custom args", func() {
			server.setReply(`{"info":{"effects":[{"name":"Foo","script":"a","args":{}}],` +
				`"activeEffects":[{"script":"a","args":{"speed":3},"priority":1}]}}`)
			_, err := client.ActiveEffectNames()
			var lookupErr *common.LookupError
			Expect(errors.As(err, &lookupErr)).To(BeTrue())
			Expect(lookupErr.Unmatched).To(ContainSubstring(`"speed": 3`))
		})

		It("should report the active color", func() {
			Expect(client.ActiveColor()).To(HaveLen(1))
			Expect(client.ActiveColorRGB()).To(Equal(common.Color{Red: 255}))
			Expect(client.ActiveColorHex()).To(Equal(`0xFF0000`))
			Expect(client.ActiveColorHSL()).To(Equal([3]float64{0, 1, 0.5}))
		})

		It("should report a missing active color", func() {
			server.setReply(`{"info":{"activeLedColor":[]}}`)
			_, err := client.ActiveColorRGB()
			Expect(err).To(Equal(common.ErrNoActiveColor))
		})

		It("should fail to parse a response without info", func() {
			server.setReply("LOG: nothing to see\n")
			_, err := client.ServerInfo()
			var parseErr *common.ParseError
			Expect(errors.As(err, &parseErr)).To(BeTrue())
		})
	})

	Describe("subscriptions", func() {
		It("should publish connection events", func() {
			server = newFakeServer(``, nil)
			client = NewClient(`127.0.0.1`, server.port())
			sub, err := client.NewSubscription()
			Expect(err).NotTo(HaveOccurred())

			Expect(client.ClearAll()).To(Succeed())
			Expect(client.Close(false)).To(Succeed())

			Expect(sub.Events()).To(Receive(Equal(common.EventConnected{Address: client.Address()})))
			Expect(sub.Events()).To(Receive(Equal(common.EventCommandSent{Command: `{"command":"clearall"}`})))
			Expect(sub.Events()).To(Receive(Equal(common.EventDisconnected{Address: client.Address()})))
			Expect(sub.Close()).To(Succeed())
		})

		It("should not slow down commands for a subscriber that stopped reading", func() {
			server = newFakeServer(``, nil)
			client = NewClient(`127.0.0.1`, server.port())
			sub, err := client.NewSubscription()
			Expect(err).NotTo(HaveOccurred())
			Expect(client.Open(timeout)).To(Succeed())

			start := time.Now()
			for i := 0; i < 40; i++ {
				Expect(client.Clear(i)).To(Succeed())
			}
			Expect(time.Since(start)).To(BeNumerically("<", common.DefaultTimeout))
			Expect(sub.Events()).To(HaveLen(16))
			for i := 0; i < 40; i++ {
				Eventually(server.lines).Should(Receive())
			}
			Expect(sub.Close()).To(Succeed())
		})

		It("should return an error when closing an unknown subscription", func() {
			client = NewClient(``, 0)
			other := NewClient(``, 0)
			sub, _ := other.NewSubscription()
			Expect(client.CloseSubscription(sub)).To(Equal(common.ErrNotFound))
		})

		It("should stop publishing to closed subscriptions", func() {
			server = newFakeServer(``, nil)
			client = NewClient(`127.0.0.1`, server.port())
			sub, _ := client.NewSubscription()
			Expect(sub.Close()).To(Succeed())
			Expect(client.Open(timeout)).To(Succeed())
			Expect(sub.Events()).NotTo(Receive())
		})
	})
})
