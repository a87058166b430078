package catalogv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ProductService_List_FullMethodName      = "/catalog.v1.ProductService/List"
	ProductService_Aggregate_FullMethodName = "/catalog.v1.ProductService/Aggregate"
	ProductService_GetBySlug_FullMethodName = "/catalog.v1.ProductService/GetBySlug"

	CategoryService_List_FullMethodName    = "/catalog.v1.CategoryService/List"
	CategoryService_GetById_FullMethodName = "/catalog.v1.CategoryService/GetById"

	SystemService_HealthCheck_FullMethodName = "/catalog.v1.SystemService/HealthCheck"
	SystemService_Echo_FullMethodName        = "/catalog.v1.SystemService/Echo"
)

// unaryHandler adapts a typed method to grpc.MethodHandler, the way generated
// *_Handler functions do.
const msgInvalidBody = "Invalid request body"

func unaryHandler[S any, Req any, Resp any](fullMethod string, call func(S, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			// Decoding runs ahead of the interceptor chain, so the status is set here.
			return nil, status.Error(codes.InvalidArgument, msgInvalidBody)
		}
		if interceptor == nil {
			return call(srv.(S), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(S), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in interface{}, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ProductService

type ProductServiceServer interface {
	List(context.Context, *ListProductsRequest) (*ListProductsResponse, error)
	Aggregate(context.Context, *AggregateProductsRequest) (*AggregateProductsResponse, error)
	GetBySlug(context.Context, *GetProductBySlugRequest) (*Product, error)
}

type UnimplementedProductServiceServer struct{}

func (UnimplementedProductServiceServer) List(context.Context, *ListProductsRequest) (*ListProductsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method List not implemented")
}

func (UnimplementedProductServiceServer) Aggregate(context.Context, *AggregateProductsRequest) (*AggregateProductsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Aggregate not implemented")
}

func (UnimplementedProductServiceServer) GetBySlug(context.Context, *GetProductBySlugRequest) (*Product, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetBySlug not implemented")
}

var ProductService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "catalog.v1.ProductService",
	HandlerType: (*ProductServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "List",
			Handler:    unaryHandler(ProductService_List_FullMethodName, ProductServiceServer.List),
		},
		{
			MethodName: "Aggregate",
			Handler:    unaryHandler(ProductService_Aggregate_FullMethodName, ProductServiceServer.Aggregate),
		},
		{
			MethodName: "GetBySlug",
			Handler:    unaryHandler(ProductService_GetBySlug_FullMethodName, ProductServiceServer.GetBySlug),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "catalog/v1/product.json",
}

func RegisterProductServiceServer(s grpc.ServiceRegistrar, srv ProductServiceServer) {
	s.RegisterService(&ProductService_ServiceDesc, srv)
}

type ProductServiceClient interface {
	List(ctx context.Context, in *ListProductsRequest, opts ...grpc.CallOption) (*ListProductsResponse, error)
	Aggregate(ctx context.Context, in *AggregateProductsRequest, opts ...grpc.CallOption) (*AggregateProductsResponse, error)
	GetBySlug(ctx context.Context, in *GetProductBySlugRequest, opts ...grpc.CallOption) (*Product, error)
}

type productServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewProductServiceClient(cc grpc.ClientConnInterface) ProductServiceClient {
	return &productServiceClient{cc}
}

func (c *productServiceClient) List(ctx context.Context, in *ListProductsRequest, opts ...grpc.CallOption) (*ListProductsResponse, error) {
	return invoke[ListProductsResponse](ctx, c.cc, ProductService_List_FullMethodName, in, opts)
}

func (c *productServiceClient) Aggregate(ctx context.Context, in *AggregateProductsRequest, opts ...grpc.CallOption) (*AggregateProductsResponse, error) {
	return invoke[AggregateProductsResponse](ctx, c.cc, ProductService_Aggregate_FullMethodName, in, opts)
}

func (c *productServiceClient) GetBySlug(ctx context.Context, in *GetProductBySlugRequest, opts ...grpc.CallOption) (*Product, error) {
	return invoke[Product](ctx, c.cc, ProductService_GetBySlug_FullMethodName, in, opts)
}

// CategoryService

type CategoryServiceServer interface {
	List(context.Context, *ListCategoriesRequest) (*ListCategoriesResponse, error)
	GetByID(context.Context, *GetCategoryByIDRequest) (*CategoryDetail, error)
}

type UnimplementedCategoryServiceServer struct{}

func (UnimplementedCategoryServiceServer) List(context.Context, *ListCategoriesRequest) (*ListCategoriesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method List not implemented")
}

func (UnimplementedCategoryServiceServer) GetByID(context.Context, *GetCategoryByIDRequest) (*CategoryDetail, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetById not implemented")
}

var CategoryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "catalog.v1.CategoryService",
	HandlerType: (*CategoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "List",
			Handler:    unaryHandler(CategoryService_List_FullMethodName, CategoryServiceServer.List),
		},
		{
			MethodName: "GetById",
			Handler:    unaryHandler(CategoryService_GetById_FullMethodName, CategoryServiceServer.GetByID),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "catalog/v1/category.json",
}

func RegisterCategoryServiceServer(s grpc.ServiceRegistrar, srv CategoryServiceServer) {
	s.RegisterService(&CategoryService_ServiceDesc, srv)
}

type CategoryServiceClient interface {
	List(ctx context.Context, in *ListCategoriesRequest, opts ...grpc.CallOption) (*ListCategoriesResponse, error)
	GetByID(ctx context.Context, in *GetCategoryByIDRequest, opts ...grpc.CallOption) (*CategoryDetail, error)
}

type categoryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCategoryServiceClient(cc grpc.ClientConnInterface) CategoryServiceClient {
	return &categoryServiceClient{cc}
}

func (c *categoryServiceClient) List(ctx context.Context, in *ListCategoriesRequest, opts ...grpc.CallOption) (*ListCategoriesResponse, error) {
	return invoke[ListCategoriesResponse](ctx, c.cc, CategoryService_List_FullMethodName, in, opts)
}

func (c *categoryServiceClient) GetByID(ctx context.Context, in *GetCategoryByIDRequest, opts ...grpc.CallOption) (*CategoryDetail, error) {
	return invoke[CategoryDetail](ctx, c.cc, CategoryService_GetById_FullMethodName, in, opts)
}

// SystemService

type SystemServiceServer interface {
	HealthCheck(context.Context, *HealthCheckRequest) (*HealthCheckResponse, error)
	Echo(context.Context, *EchoRequest) (*EchoResponse, error)
}

type UnimplementedSystemServiceServer struct{}

func (UnimplementedSystemServiceServer) HealthCheck(context.Context, *HealthCheckRequest) (*HealthCheckResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method HealthCheck not implemented")
}

func (UnimplementedSystemServiceServer) Echo(context.Context, *EchoRequest) (*EchoResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Echo not implemented")
}

var SystemService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "catalog.v1.SystemService",
	HandlerType: (*SystemServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "HealthCheck",
			Handler:    unaryHandler(SystemService_HealthCheck_FullMethodName, SystemServiceServer.HealthCheck),
		},
		{
			MethodName: "Echo",
			Handler:    unaryHandler(SystemService_Echo_FullMethodName, SystemServiceServer.Echo),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "catalog/v1/system.json",
}

func RegisterSystemServiceServer(s grpc.ServiceRegistrar, srv SystemServiceServer) {
	s.RegisterService(&SystemService_ServiceDesc, srv)
}

type SystemServiceClient interface {
	HealthCheck(ctx context.Context, in *HealthCheckRequest, opts ...grpc.CallOption) (*HealthCheckResponse, error)
	Echo(ctx context.Context, in *EchoRequest, opts ...grpc.CallOption) (*EchoResponse, error)
}

type systemServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewSystemServiceClient(cc grpc.ClientConnInterface) SystemServiceClient {
	return &systemServiceClient{cc}
}

func (c *systemServiceClient) HealthCheck(ctx context.Context, in *HealthCheckRequest, opts ...grpc.CallOption) (*HealthCheckResponse, error) {
	return invoke[HealthCheckResponse](ctx, c.cc, SystemService_HealthCheck_FullMethodName, in, opts)
}

func (c *systemServiceClient) Echo(ctx context.Context, in *EchoRequest, opts ...grpc.CallOption) (*EchoResponse, error) {
	return invoke[EchoResponse](ctx, c.cc, SystemService_Echo_FullMethodName, in, opts)
}
