package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "transfermarket.v1.TransferMarketService"

// TransferMarketServer is the server API for the TransferMarketService.
// Requests and responses are google.protobuf.Struct messages.
type TransferMarketServer interface {
	InitiateTransfer(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetTransfer(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListTransfers(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SubmitTransfer(context.Context, *structpb.Struct) (*structpb.Struct, error)
	NegotiateTransfer(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ApproveTransfer(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CompleteTransfer(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CancelTransfer(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EstimateFee(context.Context, *structpb.Struct) (*structpb.Struct, error)

	CreateClub(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetClub(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListClubs(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateClub(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteClub(context.Context, *structpb.Struct) (*structpb.Struct, error)

	CreatePlayer(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetPlayer(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListPlayers(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdatePlayer(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeletePlayer(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(TransferMarketServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// unary builds the method descriptor for one Struct-in/Struct-out RPC
func unary(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(TransferMarketServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(name),
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(TransferMarketServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// FullMethod returns the full RPC path of a TransferMarketService method
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// ServiceDesc is the grpc.ServiceDesc for the TransferMarketService
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TransferMarketServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("InitiateTransfer", TransferMarketServer.InitiateTransfer),
		unary("GetTransfer", TransferMarketServer.GetTransfer),
		unary("ListTransfers", TransferMarketServer.ListTransfers),
		unary("SubmitTransfer", TransferMarketServer.SubmitTransfer),
		unary("NegotiateTransfer", TransferMarketServer.NegotiateTransfer),
		unary("ApproveTransfer", TransferMarketServer.ApproveTransfer),
		unary("CompleteTransfer", TransferMarketServer.CompleteTransfer),
		unary("CancelTransfer", TransferMarketServer.CancelTransfer),
		unary("EstimateFee", TransferMarketServer.EstimateFee),
		unary("CreateClub", TransferMarketServer.CreateClub),
		unary("GetClub", TransferMarketServer.GetClub),
		unary("ListClubs", TransferMarketServer.ListClubs),
		unary("UpdateClub", TransferMarketServer.UpdateClub),
		unary("DeleteClub", TransferMarketServer.DeleteClub),
		unary("CreatePlayer", TransferMarketServer.CreatePlayer),
		unary("GetPlayer", TransferMarketServer.GetPlayer),
		unary("ListPlayers", TransferMarketServer.ListPlayers),
		unary("UpdatePlayer", TransferMarketServer.UpdatePlayer),
		unary("DeletePlayer", TransferMarketServer.DeletePlayer),
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterTransferMarketServer registers srv on the given gRPC server
func RegisterTransferMarketServer(s grpc.ServiceRegistrar, srv TransferMarketServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client calls TransferMarketService methods over an existing connection
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a new TransferMarketService client
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes the named method with req and returns the decoded response
func (c *Client) Call(ctx context.Context, method string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if req == nil {
		req = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
