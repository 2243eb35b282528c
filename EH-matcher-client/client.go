package main

import (
	"EH-Matcher/pkg/matcher"
	"bufio"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	defaultHost           = "127.0.0.1"
	defaultPort           = 5301
	defaultReadBufferSize = 16384
)

var (
	host           string
	port           int
	ReadBufferSize int
)

func init() {
	flag.StringVar(&host, "h", defaultHost, "matcher host(ip address)")
	flag.IntVar(&port, "p", defaultPort, "matcher port")
	flag.IntVar(&ReadBufferSize, "readBufferSize", defaultReadBufferSize, "client read buffer size")
}

// session 与 EH-Matcher 的一条连接
type session struct {
	addr       string
	bufferSize int
	conn       net.Conn
	reader     *bufio.Reader
}

func newSession(addr string, bufferSize int) *session {
	return &session{addr: addr, bufferSize: bufferSize}
}

// connect 建立新连接，旧连接先关闭
func (s *session) connect() error {
	s.close()
	conn, err := net.Dial("tcp", s.addr)
	if err != nil {
		return err
	}
	s.conn = conn
	s.reader = bufio.NewReaderSize(conn, s.bufferSize)
	return nil
}

func (s *session) connected() bool {
	return s.conn != nil
}

func (s *session) close() {
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
		s.reader = nil
	}
}

// send 发送一行命令并读取完整回复，出错时关闭连接
func (s *session) send(input string) (string, error) {
	if _, err := s.conn.Write([]byte(input + string(matcher.CommandDelim))); err != nil {
		s.close()
		return "", errors.Wrap(err, "write to EH-Matcher failed")
	}
	resp, err := matcher.ReadReply(s.reader)
	if err != nil {
		s.close()
		return "", errors.Wrap(err, "receive from EH-Matcher failed")
	}
	return resp, nil
}

func printHelp() {
	fmt.Println("-----help-----")
	fmt.Println("info\t" + "show EH-Matcher infomation")
	fmt.Println("RK [haystack] [pattern]\t" + "first index of pattern, -1 if not found (Rabin-Karp)")
	fmt.Println("KMP [haystack] [pattern]\t" + "all indices of pattern, overlapping included (KMP)")
	fmt.Println("LPS [pattern]\t" + "failure table of pattern")
	fmt.Println("Insert [word]...\t" + "insert lowercase words into the dictionary")
	fmt.Println("Contains [word]\t" + "query whether the word is in the dictionary")
	fmt.Println("Prefix [prefix]\t" + "query whether any dictionary word starts with prefix")
	fmt.Println("Shutdown\t" + "shutdown server gracefully")
	fmt.Println("-h / -help \t" + "display help")
	fmt.Println("-q / -quit \t" + "exit client")
}

func main() {
	flag.Parse()

	connAddr := net.JoinHostPort(host, strconv.Itoa(port))
	s := newSession(connAddr, ReadBufferSize)
	if err := s.connect(); err != nil {
		log.Fatal("connect matcher error: ", err)
	}
	defer s.close()

	inputReader := bufio.NewReader(os.Stdin)

	for {
		if !s.connected() && s.connect() != nil {
			fmt.Print(connAddr + "(disconnect)> ")
		} else {
			fmt.Print(connAddr + "> ")
		}

		input, err := inputReader.ReadString('\n')
		if err != nil && input == "" {
			break
		}
		input = strings.Trim(input, "\r\n")

		switch strings.ToLower(input) {
		case "-q", "-quit":
			fmt.Println("Bye,Have a good day!")
			return
		case "-h", "-help":
			printHelp()
			continue
		case "":
			continue
		}

		if !s.connected() {
			continue
		}

		resp, err := s.send(input)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(resp)
	}
}
