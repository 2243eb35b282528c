package matcher

import (
	"EH-Matcher/config"
	"EH-Matcher/pkg/system/sysPrint"
	"EH-Matcher/pkg/utils/datastructure"
	"bufio"
	"bytes"
	"io"
	"net"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/pkg/errors"
)

// 协议：每条命令以 '\n' 结尾，单行不能超过 query-buffer-size；
// 每条回复以一个空行结尾，回复正文本身不含空行
const (
	CommandDelim = '\n'
	ReplyDelim   = "\n\n"
)

var (
	ErrFailToRead  = "matcher manager failed to read client message:"
	ErrReplyClient = errors.New("reply to client failed")
	ReplyOK        = []byte("OK")
)

type commandFunc func(c *client, args [][]byte) error

type matcherManager struct {
	config     *config.MatcherConfig
	listener   net.Listener
	clientList map[*client]struct{}
	clientMu   sync.Mutex
	commandMap map[string]commandFunc
	readerPool *ReaderPool

	// 词典前缀树本身非并发安全：insert 持写锁，查询持读锁
	dict     *datastructure.Trie
	dictLock sync.RWMutex

	stop     chan struct{}
	stopOnce sync.Once
}

// NewMatcherManager 创建 matcher manager，词典使用配置中预先构建的前缀树
func NewMatcherManager(c *config.MatcherConfig) *matcherManager {
	dict := c.DictionaryTrie
	if dict == nil {
		dict = datastructure.NewTrie()
	}
	mm := &matcherManager{
		config:     c,
		clientList: make(map[*client]struct{}),
		commandMap: make(map[string]commandFunc),
		readerPool: NewReaderPool(c.QueryBufferSize),
		dict:       dict,
		stop:       make(chan struct{}),
	}
	mm.registerCommands()
	return mm
}

type client struct {
	mm   *matcherManager
	conn net.Conn
}

// ReaderPool bufio.Reader 对象池，缓冲区大小即单条命令的最大长度
type ReaderPool struct {
	pool *sync.Pool
}

func NewReaderPool(size int) *ReaderPool {
	return &ReaderPool{
		pool: &sync.Pool{
			New: func() interface{} {
				return bufio.NewReaderSize(nil, size)
			},
		},
	}
}

func (p *ReaderPool) Get(r io.Reader) *bufio.Reader {
	br := p.pool.Get().(*bufio.Reader)
	br.Reset(r)
	return br
}

func (p *ReaderPool) Put(br *bufio.Reader) {
	br.Reset(nil)
	p.pool.Put(br)
}

// RegisterCommand 注册命令，命令名全小写输入
func (mm *matcherManager) RegisterCommand(cmdName string, cmdFunc commandFunc) {
	if _, exists := mm.commandMap[cmdName]; !exists {
		mm.commandMap[cmdName] = cmdFunc
	}
}

func (mm *matcherManager) AddClient(conn net.Conn) *client {
	cli := &client{
		mm:   mm,
		conn: conn,
	}
	mm.clientMu.Lock()
	mm.clientList[cli] = struct{}{}
	mm.clientMu.Unlock()
	sysPrint.LogWriteSystemMsg("client: " + conn.RemoteAddr().String() + " connected.")
	return cli
}

func (mm *matcherManager) removeClient(c *client) {
	mm.clientMu.Lock()
	delete(mm.clientList, c)
	mm.clientMu.Unlock()
	c.conn.Close()
}

// ClientCount 当前连接数
func (mm *matcherManager) ClientCount() int {
	mm.clientMu.Lock()
	defer mm.clientMu.Unlock()
	return len(mm.clientList)
}

// Listen 绑定 ManagerAddr，Serve 之前调用可以提前拿到实际监听地址
func (mm *matcherManager) Listen() error {
	if mm.listener != nil {
		return nil
	}
	listener, err := net.Listen("tcp", mm.config.ManagerAddr)
	if err != nil {
		return errors.Wrap(err, "matcher manager listen")
	}
	mm.listener = listener
	return nil
}

// Addr 实际监听地址，未监听时返回配置地址
func (mm *matcherManager) Addr() string {
	if mm.listener == nil {
		return mm.config.ManagerAddr
	}
	return mm.listener.Addr().String()
}

// Serve 接受连接直到收到关闭信号或 shutdown 命令
func (mm *matcherManager) Serve() error {
	if err := mm.Listen(); err != nil {
		return err
	}
	sysPrint.PrintlnSystemMsg("EH-Matcher-Manager start listening at:" + mm.Addr() + ", ready to accept connections.")
	signalQuit := make(chan os.Signal, 1)
	signal.Notify(signalQuit, syscall.SIGINT, syscall.SIGTERM)

	// 监听关闭信号
	go func() {
		select {
		case <-signalQuit:
			sysPrint.PrintlnAndLogWriteSystemMsg("EH-Matcher-Manager receive shutdown signal...")
			mm.Shutdown()
		case <-mm.stop:
			sysPrint.PrintlnAndLogWriteSystemMsg("EH-Matcher-Manager receive shutdown command...")
		}
		signal.Stop(signalQuit)
		mm.beforeExit()
	}()

	// 接受连接并处理
	for {
		conn, err := mm.listener.Accept()
		if err != nil {
			select {
			case <-mm.stop:
				return nil
			default:
				sysPrint.PrintlnErrorMsg(err.Error())
				continue
			}
		}
		cli := mm.AddClient(conn)
		// 在新的 goroutine 中处理连接
		go mm.handleConnection(cli)
	}
}

func (mm *matcherManager) handleConnection(c *client) {
	defer mm.removeClient(c)
	reader := mm.readerPool.Get(c.conn)
	defer mm.readerPool.Put(reader)
	for {
		line, err := readCommand(reader)
		if errors.Is(err, bufio.ErrBufferFull) {
			err = c.Reply([]byte(sysPrint.ErrQueryTooLong.Error()))
			if err != nil {
				sysPrint.PrintlnErrorMsg(err.Error() + ", client addr:" + c.conn.RemoteAddr().String())
				return
			}
			continue
		}
		// 客户端关闭写端前最后一条没有换行的命令照常执行
		if len(line) > 0 && (err == nil || err == io.EOF) {
			if derr := mm.dispatch(c, bytes.Fields(line)); derr != nil {
				sysPrint.PrintlnErrorMsg(derr.Error() + ", client addr:" + c.conn.RemoteAddr().String())
				return
			}
		}
		if err != nil {
			if err != io.EOF {
				sysPrint.PrintlnErrorMsg(ErrFailToRead + err.Error())
			}
			return
		}
	}
}

// readCommand 读取一行命令（不含换行）。行长度超过缓冲区时丢弃该行剩余部分，返回 bufio.ErrBufferFull。
// 返回的切片在下一次读取前有效
func readCommand(r *bufio.Reader) ([]byte, error) {
	line, err := r.ReadSlice(CommandDelim)
	if err == nil {
		return line[:len(line)-1], nil
	}
	if err != bufio.ErrBufferFull {
		return line, err
	}
	for err == bufio.ErrBufferFull {
		_, err = r.ReadSlice(CommandDelim)
	}
	if err != nil {
		return nil, err
	}
	return nil, bufio.ErrBufferFull
}

// dispatch 执行一条命令，只有回复客户端失败时返回错误
func (mm *matcherManager) dispatch(c *client, args [][]byte) error {
	if len(args) == 0 {
		return nil
	}
	commandName := strings.ToLower(string(args[0]))
	sysPrint.PrintlnDebugMsg("exec command: " + commandName)
	cmd, ok := mm.commandMap[commandName]
	if !ok {
		return c.Reply([]byte(sysPrint.ErrUnknownCommand.Error()))
	}
	err := cmd(c, args)
	if err == nil || errors.Is(err, ErrReplyClient) {
		return err
	}
	return c.Reply([]byte(err.Error()))
}

// Reply 写回复正文并以空行结尾，空正文只写一个换行
func (c *client) Reply(buf []byte) error {
	buf = bytes.TrimRight(buf, "\n")
	reply := make([]byte, 0, len(buf)+len(ReplyDelim))
	reply = append(reply, buf...)
	if len(buf) > 0 {
		reply = append(reply, CommandDelim)
	}
	reply = append(reply, CommandDelim)
	if _, err := c.conn.Write(reply); err != nil {
		return errors.Wrap(ErrReplyClient, err.Error())
	}
	return nil
}

// ReadReply 读取一条回复，返回去掉结尾空行的正文
func ReadReply(r *bufio.Reader) (string, error) {
	var b strings.Builder
	for {
		line, err := r.ReadString(CommandDelim)
		if err != nil {
			return b.String(), err
		}
		if line == "\n" {
			return strings.TrimSuffix(b.String(), "\n"), nil
		}
		b.WriteString(line)
	}
}

func (mm *matcherManager) Shutdown() {
	mm.stopOnce.Do(func() {
		close(mm.stop)
	})
}

func (mm *matcherManager) beforeExit() {
	mm.listener.Close()
	mm.clientMu.Lock()
	for c := range mm.clientList {
		c.conn.Close()
	}
	mm.clientMu.Unlock()
}
