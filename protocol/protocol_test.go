/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package protocol_test

import (
	. "github.com/bibhas2/velar/protocol"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Protocol String Representation", func() {
	Describe("String() method", func() {
		It("should return 'tcp' for NetworkTCP", func() {
			Expect(NetworkTCP.String()).To(Equal("tcp"))
		})

		It("should return 'tcp4' for NetworkTCP4", func() {
			Expect(NetworkTCP4.String()).To(Equal("tcp4"))
		})

		It("should return 'tcp6' for NetworkTCP6", func() {
			Expect(NetworkTCP6.String()).To(Equal("tcp6"))
		})

		It("should return 'udp' for NetworkUDP", func() {
			Expect(NetworkUDP.String()).To(Equal("udp"))
		})

		It("should return 'udp4' for NetworkUDP4", func() {
			Expect(NetworkUDP4.String()).To(Equal("udp4"))
		})

		It("should return 'udp6' for NetworkUDP6", func() {
			Expect(NetworkUDP6.String()).To(Equal("udp6"))
		})

		It("should return empty string for an undefined protocol", func() {
			Expect(NetworkProtocol(0).String()).To(Equal(""))
		})
	})
})

var _ = Describe("Protocol Parsing", func() {
	Describe("Parse function", func() {
		It("should parse tcp (lowercase)", func() {
			Expect(Parse("tcp")).To(Equal(NetworkTCP))
		})

		It("should parse TCP (uppercase)", func() {
			Expect(Parse("TCP")).To(Equal(NetworkTCP))
		})

		It("should parse tcp4/tcp6", func() {
			Expect(Parse("tcp4")).To(Equal(NetworkTCP4))
			Expect(Parse("tcp6")).To(Equal(NetworkTCP6))
		})

		It("should parse udp/udp4/udp6", func() {
			Expect(Parse("udp")).To(Equal(NetworkUDP))
			Expect(Parse("udp4")).To(Equal(NetworkUDP4))
			Expect(Parse("udp6")).To(Equal(NetworkUDP6))
		})

		It("should tolerate surrounding whitespace", func() {
			Expect(Parse("  udp  ")).To(Equal(NetworkUDP))
		})

		It("should return the zero value for an unknown string", func() {
			Expect(Parse("sctp").Valid()).To(BeFalse())
		})
	})
})

var _ = Describe("Protocol classification", func() {
	It("classifies stream protocols", func() {
		Expect(NetworkTCP.IsStream()).To(BeTrue())
		Expect(NetworkTCP4.IsStream()).To(BeTrue())
		Expect(NetworkTCP6.IsStream()).To(BeTrue())
		Expect(NetworkUDP.IsStream()).To(BeFalse())
	})

	It("classifies datagram protocols", func() {
		Expect(NetworkUDP.IsDatagram()).To(BeTrue())
		Expect(NetworkTCP.IsDatagram()).To(BeFalse())
	})

	It("classifies dual-stack protocols", func() {
		Expect(NetworkTCP.IsDualStack()).To(BeTrue())
		Expect(NetworkUDP.IsDualStack()).To(BeTrue())
		Expect(NetworkTCP4.IsDualStack()).To(BeFalse())
		Expect(NetworkTCP6.IsDualStack()).To(BeFalse())
		Expect(NetworkUDP4.IsDualStack()).To(BeFalse())
		Expect(NetworkUDP6.IsDualStack()).To(BeFalse())
	})
})
